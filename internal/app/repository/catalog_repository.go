package repository

import (
	"github.com/historin/historin-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	// DefaultListLimit applies when no limit query param is given.
	DefaultListLimit = 100
	// MaxListLimit caps any requested page size.
	MaxListLimit = 500
)

// CrudRepository is the shared persistence surface for the catalog resources
// (cities, streets, businesses, authors, works, organizations, reference
// sites, popup ads). The interesting entities (ads, QR codes, quiz) have
// dedicated repositories layered on top of the same idea.
type CrudRepository[T any] interface {
	List(limit, offset int) ([]T, error)
	FindByID(id uint) (*T, error)
	Create(record *T) error
	Patch(id uint, fields map[string]interface{}) (*T, error)
	Delete(id uint) error
}

type crudRepository[T any] struct {
	db   *gorm.DB
	name string
}

// NewCrudRepository returns a CrudRepository for T. name is used for log
// context only.
func NewCrudRepository[T any](db *gorm.DB, name string) CrudRepository[T] {
	return &crudRepository[T]{db: db, name: name}
}

func (r *crudRepository[T]) List(limit, offset int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var records []T
	err := r.db.Model(new(T)).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		logger.Error("Failed to list records", err, map[string]interface{}{
			"resource": r.name,
			"limit":    limit,
			"offset":   offset,
		})
		return nil, err
	}

	logger.Debug("Records listed", map[string]interface{}{
		"resource": r.name,
		"count":    len(records),
	})
	return records, nil
}

func (r *crudRepository[T]) FindByID(id uint) (*T, error) {
	var record T
	if err := r.db.First(&record, id).Error; err != nil {
		logger.Debug("Record not found by ID", map[string]interface{}{
			"resource": r.name,
			"id":       id,
		})
		return nil, err
	}
	return &record, nil
}

func (r *crudRepository[T]) Create(record *T) error {
	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed to create record", err, map[string]interface{}{
			"resource": r.name,
		})
		return err
	}
	logger.Debug("Record created", map[string]interface{}{
		"resource": r.name,
	})
	return nil
}

// Patch applies a partial update of the given column/value pairs and returns
// the updated row. A missing id surfaces as gorm.ErrRecordNotFound.
func (r *crudRepository[T]) Patch(id uint, fields map[string]interface{}) (*T, error) {
	if _, err := r.FindByID(id); err != nil {
		return nil, err
	}

	result := r.db.Model(new(T)).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to patch record", result.Error, map[string]interface{}{
			"resource": r.name,
			"id":       id,
		})
		return nil, result.Error
	}

	return r.FindByID(id)
}

func (r *crudRepository[T]) Delete(id uint) error {
	result := r.db.Delete(new(T), id)
	if result.Error != nil {
		logger.Error("Failed to delete record", result.Error, map[string]interface{}{
			"resource": r.name,
			"id":       id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Record deleted", map[string]interface{}{
		"resource": r.name,
		"id":       id,
	})
	return nil
}
