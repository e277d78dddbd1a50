package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService owns the scheduled republish cycle: it runs the publisher
// on an interval and clears the dashboard cache after each successful run so
// readers never see a mix of old and new snapshots.
type RefresherService struct {
	publisher       *PublisherService
	cache           *CacheService
	logger          *logrus.Logger
	cron            *cron.Cron
	mu              sync.Mutex
	isRunning       bool
	publishInterval time.Duration
	skipInitial     bool
}

func NewRefresherService(
	publisher *PublisherService,
	cache *CacheService,
	logger *logrus.Logger,
	publishInterval time.Duration,
	skipInitial bool,
) *RefresherService {
	return &RefresherService{
		publisher:       publisher,
		cache:           cache,
		logger:          logger,
		cron:            cron.New(),
		publishInterval: publishInterval,
		skipInitial:     skipInitial,
	}
}

// Start begins the scheduled publish cycle.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.publishInterval.String())
	_, err := s.cron.AddFunc(schedule, s.runPublish)
	if err != nil {
		return fmt.Errorf("failed to schedule publish: %w", err)
	}

	// Nightly cache flush catches anything TTLs missed.
	_, err = s.cron.AddFunc("0 3 * * *", s.flushCache)
	if err != nil {
		return fmt.Errorf("failed to schedule cache flush: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if !s.skipInitial {
		go s.runPublish()
	}

	s.logger.Info("Refresher service started")
	return nil
}

// Stop halts the schedule, waiting for an in-flight publish to finish.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Refresher service stopped")
}

// PublishNow triggers a publish outside the schedule. The run executes in
// the background; callers poll Status or the publish runs table for outcome.
func (s *RefresherService) PublishNow() {
	go s.runPublish()
}

func (s *RefresherService) runPublish() {
	run, err := s.publisher.Publish(context.Background())
	if err != nil {
		s.logger.WithError(err).Error("Scheduled publish failed")
		return
	}

	s.logger.WithField("publish_id", run.ID).Info("Scheduled publish completed")
	s.flushCache()
}

func (s *RefresherService) flushCache() {
	if err := s.cache.Flush(); err != nil {
		s.logger.WithError(err).Warn("Failed to flush cache after publish")
	}
}

// Status reports the scheduler state for the health endpoint.
func (s *RefresherService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running":       s.isRunning,
		"publish_interval": s.publishInterval.String(),
		"next_runs":        nextRuns,
		"cron_jobs":        len(entries),
	}
}
