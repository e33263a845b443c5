package services

import (
	"context"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"

	"gorm.io/gorm"
)

type TourService interface {
	ResourceService[models.Tour]
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Tour, error)
}

type TourServiceImpl struct {
	*resourceService[models.Tour]
	tourRepo repositories.TourRepository
}

func NewTourService(tourRepo repositories.TourRepository) TourService {
	return &TourServiceImpl{
		resourceService: newResourceService[models.Tour]("tour", tourRepo),
		tourRepo:        tourRepo,
	}
}

func (s *TourServiceImpl) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Tour, error) {
	tour, err := s.tourRepo.FindBySlug(ctx, db, slug)
	if err != nil {
		return nil, translateRecordError("tour", err)
	}
	return tour, nil
}
