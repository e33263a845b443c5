package services

import (
	"context"

	"tourhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// ResourceService is the plain CRUD surface shared by tours and bookings.
type ResourceService[T any] interface {
	List(ctx context.Context, db *gorm.DB, opts repositories.ListOptions) ([]T, int64, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*T, error)
	Create(ctx context.Context, db *gorm.DB, record *T) error
	Update(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, db *gorm.DB, id string) error
}

type resourceService[T any] struct {
	domain string
	repo   repositories.CRUDRepository[T]
}

func newResourceService[T any](domain string, repo repositories.CRUDRepository[T]) *resourceService[T] {
	return &resourceService[T]{domain: domain, repo: repo}
}

func (s *resourceService[T]) List(ctx context.Context, db *gorm.DB, opts repositories.ListOptions) ([]T, int64, error) {
	records, total, err := s.repo.List(ctx, db, opts)
	if err != nil {
		return nil, 0, translateRecordError(s.domain, err)
	}
	return records, total, nil
}

func (s *resourceService[T]) Get(ctx context.Context, db *gorm.DB, id string) (*T, error) {
	record, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return nil, translateRecordError(s.domain, err)
	}
	return record, nil
}

func (s *resourceService[T]) Create(ctx context.Context, db *gorm.DB, record *T) error {
	return translateRecordError(s.domain, s.repo.Create(ctx, db, record))
}

func (s *resourceService[T]) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*T, error) {
	if len(fields) == 0 {
		return s.Get(ctx, db, id)
	}
	record, err := s.repo.Update(ctx, db, id, fields)
	if err != nil {
		return nil, translateRecordError(s.domain, err)
	}
	return record, nil
}

func (s *resourceService[T]) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return translateRecordError(s.domain, s.repo.Delete(ctx, db, id))
}
