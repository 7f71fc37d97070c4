package database

import (
	"fitprofile/internal/logger"
	"fitprofile/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	logger.Logger.Info("Running database migrations")

	err := db.AutoMigrate(
		&models.HealthSample{},
		&models.HealthAuthorization{},
		&models.Characteristic{},
	)
	if err != nil {
		logger.Logger.Error("Error during migration", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migrations completed")
	return nil
}
