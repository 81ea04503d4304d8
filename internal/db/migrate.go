package db

import (
	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.City{},
		&model.Street{},
		&model.Author{},
		&model.Work{},
		&model.Business{},
		&model.Organization{},
		&model.ReferenceSite{},
		&model.Ad{},
		&model.PopupAd{},
		&model.QuizQuestion{},
		&model.QuizSubmission{},
		&model.QrCode{},
		&model.UserQrScan{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
