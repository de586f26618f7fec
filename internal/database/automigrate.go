package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"construction-stage-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Stage{}); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}

// AutoMigrateWithRetry retries AutoMigrate with linear backoff. The
// schema may race a database that is still accepting its first
// connections at deploy time.
func AutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = AutoMigrate(db)
		if err == nil {
			logger.Info("Database migrations completed",
				zap.Int("attempt", attempt),
			)
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
