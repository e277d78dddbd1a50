package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fullcourtvision/backend/internal/models"
	"github.com/fullcourtvision/backend/pkg/database"
)

// PublisherService republishes the scraper's staging snapshot into the
// hosted serving store. Each run copies reference tables first, then the
// volume tables in batches, then rebuilds the team aggregates, all recorded
// under a PublishRun row. The hosted writes go through a circuit breaker so
// a flapping database fails runs fast instead of hammering it.
type PublisherService struct {
	staging   *database.DB
	hosted    *database.DB
	logger    *logrus.Logger
	breaker   *gobreaker.CircuitBreaker
	batchSize int
	timeout   time.Duration
	mu        sync.Mutex
}

func NewPublisherService(
	staging *database.DB,
	hosted *database.DB,
	logger *logrus.Logger,
	threshold int,
	batchSize int,
	timeout time.Duration,
) *PublisherService {
	settings := gobreaker.Settings{
		Name:        "hosted-db",
		MaxRequests: uint32(threshold),
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "publisher",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &PublisherService{
		staging:   staging,
		hosted:    hosted,
		logger:    logger,
		breaker:   gobreaker.NewCircuitBreaker(settings),
		batchSize: batchSize,
		timeout:   timeout,
	}
}

// Publish runs one full staging-to-hosted republish. Concurrent calls are
// serialized; the second caller waits rather than racing the first.
func (s *PublisherService) Publish(ctx context.Context) (*models.PublishRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	run := &models.PublishRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    "running",
	}
	if err := s.hosted.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to create publish run: %w", err)
	}

	log := s.logger.WithFields(logrus.Fields{
		"component":  "publisher",
		"publish_id": run.ID,
	})
	log.Info("Publish run started")

	counts, err := s.copyAll(ctx)
	if err == nil {
		err = s.rebuildTeamAggregates(ctx)
	}

	now := time.Now().UTC()
	run.FinishedAt = &now
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
		log.WithError(err).Error("Publish run failed")
	} else {
		run.Status = "succeeded"
		if payload, jsonErr := json.Marshal(counts); jsonErr == nil {
			run.Summary = datatypes.JSON(payload)
		}
		log.WithField("row_counts", counts).Info("Publish run succeeded")
	}

	if saveErr := s.hosted.WithContext(ctx).Save(run).Error; saveErr != nil {
		log.WithError(saveErr).Error("Failed to record publish run outcome")
	}

	if err != nil {
		return run, err
	}
	return run, nil
}

// copyAll copies every staging table in dependency order so foreign keys on
// the hosted side always resolve. Returns per-table row counts.
func (s *PublisherService) copyAll(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)

	steps := []struct {
		table string
		copy  func(context.Context) (int64, error)
	}{
		{"organisations", copyTable[models.Organisation](s)},
		{"competitions", copyTable[models.Competition](s)},
		{"seasons", copyTable[models.Season](s)},
		{"grades", copyTable[models.Grade](s)},
		{"teams", copyTable[models.Team](s)},
		{"players", copyTable[models.Player](s)},
		{"player_stats", copyTable[models.PlayerStat](s)},
		{"games", copyTable[models.Game](s)},
	}

	for _, step := range steps {
		n, err := step.copy(ctx)
		if err != nil {
			return counts, fmt.Errorf("failed to publish %s: %w", step.table, err)
		}
		counts[step.table] = n
		s.logger.WithFields(logrus.Fields{
			"component": "publisher",
			"table":     step.table,
			"rows":      n,
		}).Debug("Table published")
	}

	return counts, nil
}

// copyTable streams one staging table into the hosted store in upsert
// batches, each batch passing through the circuit breaker.
func copyTable[T any](s *PublisherService) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		var total int64
		var batch []T

		err := s.staging.WithContext(ctx).FindInBatches(&batch, s.batchSize, func(tx *gorm.DB, _ int) error {
			rows := make([]T, len(batch))
			copy(rows, batch)

			_, err := s.breaker.Execute(func() (interface{}, error) {
				return nil, s.hosted.WithContext(ctx).
					Clauses(clause.OnConflict{UpdateAll: true}).
					Create(&rows).Error
			})
			if err != nil {
				return err
			}
			total += int64(len(rows))
			return nil
		}).Error
		if err != nil {
			return total, err
		}
		return total, nil
	}
}

// rebuildTeamAggregates recomputes the per-team season records from the
// freshly published games. Aggregates are replaced wholesale; they are
// derived data and cheap to rebuild.
func (s *PublisherService) rebuildTeamAggregates(ctx context.Context) error {
	db := s.hosted.WithContext(ctx)

	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	var grades []models.Grade
	if err := db.Preload("Season.Competition.Organisation").Find(&grades).Error; err != nil {
		return fmt.Errorf("failed to load grades: %w", err)
	}
	gradeByID := make(map[string]models.Grade, len(grades))
	for _, g := range grades {
		gradeByID[g.ID] = g
	}

	var games []models.Game
	if err := db.Where("status = ?", "FINAL").Find(&games).Error; err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}

	aggregates := make(map[string]*models.TeamAggregate, len(teams))
	for _, t := range teams {
		agg := &models.TeamAggregate{
			TeamID: t.ID,
			Name:   t.Name,
		}
		if g, ok := gradeByID[t.GradeID]; ok && g.Season != nil {
			agg.SeasonID = g.Season.ID
			agg.SeasonName = g.Season.Name
			if g.Season.Competition != nil && g.Season.Competition.Organisation != nil {
				agg.OrganisationID = g.Season.Competition.Organisation.ID
				agg.OrganisationName = g.Season.Competition.Organisation.Name
			}
		}
		aggregates[t.ID] = agg
	}

	for _, g := range games {
		if !g.IsCompleted() {
			continue
		}
		home, away := aggregates[g.HomeTeamID], aggregates[g.AwayTeamID]
		hs, as := *g.HomeScore, *g.AwayScore
		if home != nil {
			home.GamesPlayed++
			home.PointsFor += hs
			home.PointsAgainst += as
			recordOutcome(home, hs, as)
		}
		if away != nil {
			away.GamesPlayed++
			away.PointsFor += as
			away.PointsAgainst += hs
			recordOutcome(away, as, hs)
		}
	}

	rows := make([]models.TeamAggregate, 0, len(aggregates))
	now := time.Now().UTC()
	for _, agg := range aggregates {
		agg.UpdatedAt = now
		rows = append(rows, *agg)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.TeamAggregate{}).Error; err != nil {
			return fmt.Errorf("failed to clear team aggregates: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, s.batchSize).Error
	})
}

func recordOutcome(agg *models.TeamAggregate, scored, conceded int) {
	switch {
	case scored > conceded:
		agg.Wins++
	case scored < conceded:
		agg.Losses++
	default:
		agg.Draws++
	}
}

// LastRun returns the most recent publish run, or nil when none exist.
func (s *PublisherService) LastRun(ctx context.Context) (*models.PublishRun, error) {
	var run models.PublishRun
	err := s.hosted.WithContext(ctx).Order("started_at DESC").First(&run).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// BreakerState exposes the circuit breaker state for health reporting.
func (s *PublisherService) BreakerState() gobreaker.State {
	return s.breaker.State()
}
