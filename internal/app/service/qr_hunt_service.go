package service

import (
	"errors"
	"math"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidQrCode  = errors.New("invalid or inactive qr code")
	ErrDuplicateScan  = errors.New("qr code already scanned by this user")
	ErrQrCodeNotFound = errors.New("qr code not found")
)

// QrProgress is a user's hunt completion snapshot. Total counts the codes
// that are active right now, so deactivating a code moves every user's
// percentage.
type QrProgress struct {
	Scanned    int      `json:"scanned"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	ScannedIDs []string `json:"scannedIds"`
}

type QrHuntService interface {
	// RecordScan resolves a scanned token to an active code and stores the
	// find. Scans are idempotent per (user, code): a repeat attempt returns
	// ErrDuplicateScan and leaves the store untouched.
	RecordScan(userID, token string) (*model.UserQrScan, *model.QrCode, *QrProgress, error)
	GetProgress(userID string) (*QrProgress, error)
	ListActiveCodes() ([]model.QrCode, error)
	ListScans(userID string) ([]model.UserQrScan, error)

	ListCodes(limit, offset int) ([]model.QrCode, error)
	CreateCode(code *model.QrCode) error
	PatchCode(id uint, fields map[string]interface{}) (*model.QrCode, error)
	DeleteCode(id uint) error
}

type qrHuntService struct {
	codeRepo repository.QrCodeRepository
	scanRepo repository.QrScanRepository
}

func NewQrHuntService(codeRepo repository.QrCodeRepository, scanRepo repository.QrScanRepository) QrHuntService {
	return &qrHuntService{
		codeRepo: codeRepo,
		scanRepo: scanRepo,
	}
}

func (s *qrHuntService) RecordScan(userID, token string) (*model.UserQrScan, *model.QrCode, *QrProgress, error) {
	logger.Info("Recording QR scan", map[string]interface{}{
		"user_id": userID,
	})

	code, err := s.codeRepo.FindActiveByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Scan rejected: unknown or inactive code", map[string]interface{}{
				"user_id": userID,
			})
			return nil, nil, nil, ErrInvalidQrCode
		}
		return nil, nil, nil, err
	}

	scan := &model.UserQrScan{
		UserID:   userID,
		QrCodeID: code.ID,
	}

	// The unique index on (user_id, qr_code_id) is the duplicate signal;
	// no read-then-insert race.
	if err := s.scanRepo.Create(scan); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Info("Duplicate scan rejected", map[string]interface{}{
				"user_id":    userID,
				"qr_code_id": code.ID,
			})
			return nil, nil, nil, ErrDuplicateScan
		}
		return nil, nil, nil, err
	}

	progress, err := s.GetProgress(userID)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("QR scan recorded", map[string]interface{}{
		"user_id":    userID,
		"qr_code_id": code.ID,
		"scanned":    progress.Scanned,
		"total":      progress.Total,
	})
	return scan, code, progress, nil
}

func (s *qrHuntService) GetProgress(userID string) (*QrProgress, error) {
	scans, err := s.scanRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	total, err := s.codeRepo.CountActive()
	if err != nil {
		return nil, err
	}

	scannedIDs := make([]string, 0, len(scans))
	for _, scan := range scans {
		if scan.QrCode != nil {
			scannedIDs = append(scannedIDs, scan.QrCode.Code)
		}
	}

	progress := &QrProgress{
		Scanned:    len(scans),
		Total:      int(total),
		ScannedIDs: scannedIDs,
	}
	if progress.Total > 0 {
		progress.Percentage = int(math.Round(100 * float64(progress.Scanned) / float64(progress.Total)))
	}

	return progress, nil
}

func (s *qrHuntService) ListActiveCodes() ([]model.QrCode, error) {
	return s.codeRepo.ListActive()
}

func (s *qrHuntService) ListScans(userID string) ([]model.UserQrScan, error) {
	return s.scanRepo.FindByUser(userID)
}

func (s *qrHuntService) ListCodes(limit, offset int) ([]model.QrCode, error) {
	return s.codeRepo.List(limit, offset)
}

func (s *qrHuntService) CreateCode(code *model.QrCode) error {
	return s.codeRepo.Create(code)
}

func (s *qrHuntService) PatchCode(id uint, fields map[string]interface{}) (*model.QrCode, error) {
	code, err := s.codeRepo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQrCodeNotFound
		}
		return nil, err
	}
	return code, nil
}

func (s *qrHuntService) DeleteCode(id uint) error {
	if err := s.codeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQrCodeNotFound
		}
		return err
	}
	return nil
}
