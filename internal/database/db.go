package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/config"
	"github.com/openrecruit/ats-backend/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("migrations complete")
	return db, nil
}

// Migrate creates or updates the schema. Exported so tests can run the same
// migrations against their own database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Candidate{},
		&models.Job{},
		&models.Application{},
		&models.StatusHistory{},
	)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
