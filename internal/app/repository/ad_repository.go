package repository

import (
	"errors"
	"time"

	"github.com/historin/historin-backend/internal/app/model"
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdRepository interface {
	CrudRepository[model.Ad]
	// FindEligible returns the best eligible ad for the given street scope:
	// active, in-window at now, ordered by priority then recency. A nil
	// streetID restricts the query to generic ads (street_id IS NULL).
	FindEligible(streetID *uint, now time.Time) (*model.Ad, error)
	// DeactivateExpired flips active off for ads whose window has ended.
	DeactivateExpired(now time.Time) (int64, error)
}

type adRepository struct {
	CrudRepository[model.Ad]
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{
		CrudRepository: NewCrudRepository[model.Ad](db, "ad"),
		db:             db,
	}
}

func (r *adRepository) FindEligible(streetID *uint, now time.Time) (*model.Ad, error) {
	query := r.db.Model(&model.Ad{}).
		Where("active = ?", true).
		Where("(start_at IS NULL OR start_at <= ?)", now).
		Where("(end_at IS NULL OR end_at >= ?)", now)

	if streetID != nil {
		query = query.Where("street_id = ?", *streetID)
	} else {
		query = query.Where("street_id IS NULL")
	}

	// Equal priority breaks on most-recently-updated so admins can bump an
	// ad by touching it.
	var ad model.Ad
	err := query.
		Order("priority DESC").
		Order("updated_at DESC").
		First(&ad).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to query eligible ads", err, map[string]interface{}{
				"street_id": streetID,
			})
		}
		return nil, err
	}

	logger.Debug("Eligible ad found", map[string]interface{}{
		"ad_id":     ad.ID,
		"street_id": streetID,
		"priority":  ad.Priority,
	})
	return &ad, nil
}

func (r *adRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Ad{}).
		Where("active = ?", true).
		Where("end_at IS NOT NULL AND end_at < ?", now).
		Update("active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired ads", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
