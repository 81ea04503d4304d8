package db

import (
	"fmt"
	"log"

	"github.com/historin/historin-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	tables := []string{
		"user_qr_scans", "qr_codes", "quiz", "quiz_questions",
		"ads", "popup_ads", "works", "businesses", "streets", "cities",
		"authors", "organizations", "reference_sites",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
