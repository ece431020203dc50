package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"kukkaro/internal/config"
	"kukkaro/internal/database"
	"kukkaro/internal/logger"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: migrate <up|down|version|seed> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	command := os.Args[1]
	if command == "seed" {
		return seed(cfg.Database)
	}

	m, err := database.NewMigrator(cfg.Database)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(m)

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, version, or seed)", command)
	}

	return nil
}

// seed applies pending migrations and inserts the default categories into an empty database.
func seed(cfg config.DatabaseConfig) error {
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.RunMigrations(); err != nil {
		return err
	}

	n, err := dbManager.Seed()
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if n == 0 {
		logger.Get().Info("Categories already present, nothing seeded")
		return nil
	}
	logger.Get().Infof("Seeded %d default categories", n)
	return nil
}
