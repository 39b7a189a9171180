package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"racedebrief/internal/api/models"
	"racedebrief/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database and brings the schema up to date.
// sqlite is the development default (the deployed data set is tiny),
// postgres is selected via DATABASE_DRIVER for real deployments.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	// TranslateError turns driver unique-constraint violations into
	// gorm.ErrDuplicatedKey on both drivers; the duplicate-review and
	// double-like guarantees depend on it.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}

// Migrate creates or updates the schema for every persisted entity,
// including the composite unique indexes on reviews(user_id, race_id)
// and likes(user_id, review_id).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Race{},
		&models.Review{},
		&models.Comment{},
		&models.Like{},
		&models.RefreshToken{},
	)
}
