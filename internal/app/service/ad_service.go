package service

import (
	"errors"
	"time"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/internal/app/repository"
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoAdAvailable = errors.New("no ad available")
	ErrAdNotFound    = errors.New("ad not found")
)

type AdService interface {
	// SelectAd picks at most one ad for the public site. Street-targeted
	// ads always win over generic ones regardless of priority; within a
	// scope the order is priority, then most recently updated.
	SelectAd(streetID *uint) (*model.Ad, error)
	DeactivateExpired() (int64, error)

	ListAds(limit, offset int) ([]model.Ad, error)
	CreateAd(ad *model.Ad) error
	PatchAd(id uint, fields map[string]interface{}) (*model.Ad, error)
	DeleteAd(id uint) error
}

type adService struct {
	adRepo repository.AdRepository
	now    func() time.Time
}

func NewAdService(adRepo repository.AdRepository) AdService {
	return &adService{
		adRepo: adRepo,
		now:    time.Now,
	}
}

func (s *adService) SelectAd(streetID *uint) (*model.Ad, error) {
	now := s.now()

	if streetID != nil {
		ad, err := s.adRepo.FindEligible(streetID, now)
		if err == nil {
			logger.Info("Street-targeted ad selected", map[string]interface{}{
				"ad_id":     ad.ID,
				"street_id": *streetID,
			})
			return ad, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	ad, err := s.adRepo.FindEligible(nil, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("No eligible ad", map[string]interface{}{
				"street_id": streetID,
			})
			return nil, ErrNoAdAvailable
		}
		return nil, err
	}

	logger.Info("Generic ad selected", map[string]interface{}{
		"ad_id": ad.ID,
	})
	return ad, nil
}

func (s *adService) DeactivateExpired() (int64, error) {
	count, err := s.adRepo.DeactivateExpired(s.now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired ads deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

func (s *adService) ListAds(limit, offset int) ([]model.Ad, error) {
	return s.adRepo.List(limit, offset)
}

func (s *adService) CreateAd(ad *model.Ad) error {
	return s.adRepo.Create(ad)
}

func (s *adService) PatchAd(id uint, fields map[string]interface{}) (*model.Ad, error) {
	ad, err := s.adRepo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return ad, nil
}

func (s *adService) DeleteAd(id uint) error {
	if err := s.adRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdNotFound
		}
		return err
	}
	return nil
}
