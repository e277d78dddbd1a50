package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fullcourtvision/backend/internal/models"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/config"
	"github.com/fullcourtvision/backend/pkg/database"
	"github.com/fullcourtvision/backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: publish [migrate|run]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger("", cfg.IsDevelopment())

	// Connect to the hosted serving store
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "migrate":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "run":
		if err := runPublish(cfg, db); err != nil {
			logrus.Fatalf("Publish failed: %v", err)
		}
		logrus.Info("Publish completed successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Enable UUID extension for PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.Organisation{},
		&models.Competition{},
		&models.Season{},
		&models.Grade{},
		&models.Team{},
		&models.Player{},
		&models.PlayerStat{},
		&models.Game{},
		&models.TeamAggregate{},
		&models.PublishRun{},
		&models.Subscriber{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_player_stats_player ON player_stats(player_id)",
		"CREATE INDEX IF NOT EXISTS idx_player_stats_grade ON player_stats(grade_id)",
		"CREATE INDEX IF NOT EXISTS idx_players_name ON players(last_name, first_name)",
		"CREATE INDEX IF NOT EXISTS idx_games_grade ON games(grade_id)",
		"CREATE INDEX IF NOT EXISTS idx_games_status ON games(status)",
		"CREATE INDEX IF NOT EXISTS idx_teams_grade ON teams(grade_id)",
		"CREATE INDEX IF NOT EXISTS idx_grades_season ON grades(season_id)",
		"CREATE INDEX IF NOT EXISTS idx_team_aggregates_team ON team_aggregates(team_id)",
		"CREATE INDEX IF NOT EXISTS idx_publish_runs_started ON publish_runs(started_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// runPublish performs one staging-to-hosted republish and exits. Used by
// deploy hooks and for manual refreshes outside the server's schedule.
func runPublish(cfg *config.Config, db *database.DB) error {
	staging, err := database.NewStagingConnection(cfg.StagingPath, cfg.IsDevelopment())
	if err != nil {
		return fmt.Errorf("failed to open staging database: %w", err)
	}
	defer staging.Close()

	publisher := services.NewPublisherService(
		staging,
		db,
		logger.GetLogger(),
		cfg.CircuitBreakerThreshold,
		cfg.PublishBatchSize,
		cfg.PublishTimeout,
	)

	run, err := publisher.Publish(context.Background())
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"run_id": run.ID,
		"status": run.Status,
	}).Info("Publish run finished")

	return nil
}
