package repository

import (
	"errors"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

type QrCodeRepository interface {
	CrudRepository[model.QrCode]
	// FindActiveByToken resolves a scanned payload to an active code, by the
	// code itself or any of its valid strings. Matching happens in process
	// so the lookup behaves the same on every store backend; the set of
	// active codes is small by design.
	FindActiveByToken(token string) (*model.QrCode, error)
	ListActive() ([]model.QrCode, error)
	CountActive() (int64, error)
}

type qrCodeRepository struct {
	CrudRepository[model.QrCode]
	db *gorm.DB
}

func NewQrCodeRepository(db *gorm.DB) QrCodeRepository {
	return &qrCodeRepository{
		CrudRepository: NewCrudRepository[model.QrCode](db, "qr_code"),
		db:             db,
	}
}

func (r *qrCodeRepository) FindActiveByToken(token string) (*model.QrCode, error) {
	codes, err := r.ListActive()
	if err != nil {
		return nil, err
	}
	for i := range codes {
		if codes[i].Matches(token) {
			return &codes[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *qrCodeRepository) ListActive() ([]model.QrCode, error) {
	var codes []model.QrCode
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&codes).Error; err != nil {
		logger.Error("Failed to list active QR codes", err)
		return nil, err
	}
	return codes, nil
}

func (r *qrCodeRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&model.QrCode{}).Where("active = ?", true).Count(&count).Error; err != nil {
		logger.Error("Failed to count active QR codes", err)
		return 0, err
	}
	return count, nil
}

type QrScanRepository interface {
	// Create inserts the scan row; a duplicate (user, code) pair comes back
	// as gorm.ErrDuplicatedKey from the unique index.
	Create(scan *model.UserQrScan) error
	FindByUser(userID string) ([]model.UserQrScan, error)
	CountByUser(userID string) (int64, error)
}

type qrScanRepository struct {
	db *gorm.DB
}

func NewQrScanRepository(db *gorm.DB) QrScanRepository {
	return &qrScanRepository{db: db}
}

func (r *qrScanRepository) Create(scan *model.UserQrScan) error {
	if err := r.db.Create(scan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Debug("Duplicate QR scan rejected", map[string]interface{}{
				"user_id":    scan.UserID,
				"qr_code_id": scan.QrCodeID,
			})
		} else {
			logger.Error("Failed to create QR scan", err, map[string]interface{}{
				"user_id":    scan.UserID,
				"qr_code_id": scan.QrCodeID,
			})
		}
		return err
	}

	logger.Debug("QR scan recorded", map[string]interface{}{
		"scan_id":    scan.ID,
		"user_id":    scan.UserID,
		"qr_code_id": scan.QrCodeID,
	})
	return nil
}

func (r *qrScanRepository) FindByUser(userID string) ([]model.UserQrScan, error) {
	var scans []model.UserQrScan
	err := r.db.Preload("QrCode").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&scans).Error
	if err != nil {
		logger.Error("Failed to list QR scans", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return scans, nil
}

func (r *qrScanRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserQrScan{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count QR scans", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	return count, nil
}
