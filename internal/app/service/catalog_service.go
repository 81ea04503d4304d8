package service

import (
	"errors"

	"github.com/historin/historin-backend/internal/app/repository"
	"gorm.io/gorm"
)

// ErrRecordNotFound is the uniform not-found signal for catalog resources;
// controllers map it to a 404.
var ErrRecordNotFound = errors.New("record not found")

// CatalogService is the shared CRUD surface over a catalog repository. It
// normalizes store not-found errors into ErrRecordNotFound so every admin
// handler treats an absent id the same way.
type CatalogService[T any] interface {
	List(limit, offset int) ([]T, error)
	Get(id uint) (*T, error)
	Create(record *T) error
	Patch(id uint, fields map[string]interface{}) (*T, error)
	Delete(id uint) error
}

type catalogService[T any] struct {
	repo repository.CrudRepository[T]
}

func NewCatalogService[T any](repo repository.CrudRepository[T]) CatalogService[T] {
	return &catalogService[T]{repo: repo}
}

func (s *catalogService[T]) List(limit, offset int) ([]T, error) {
	return s.repo.List(limit, offset)
}

func (s *catalogService[T]) Get(id uint) (*T, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *catalogService[T]) Create(record *T) error {
	return s.repo.Create(record)
}

func (s *catalogService[T]) Patch(id uint, fields map[string]interface{}) (*T, error) {
	record, err := s.repo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *catalogService[T]) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
