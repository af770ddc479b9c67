package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"instauto/internal/adapter/persistence/models"
)

// MigratePostgres applies the gorm models to the database behind url.
func MigratePostgres(url string) error {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("database: open postgres for migration: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: postgres handle: %w", err)
	}
	defer sqlDB.Close()

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("database: migrate postgres: %w", err)
	}
	return nil
}
