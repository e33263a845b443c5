package services

import (
	"context"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"

	"gorm.io/gorm"
)

type BookingService interface {
	ResourceService[models.Booking]
	MyTours(ctx context.Context, db *gorm.DB, userID string) ([]models.Tour, error)
}

type BookingServiceImpl struct {
	*resourceService[models.Booking]
	bookingRepo repositories.BookingRepository
}

func NewBookingService(bookingRepo repositories.BookingRepository) BookingService {
	return &BookingServiceImpl{
		resourceService: newResourceService[models.Booking]("booking", bookingRepo),
		bookingRepo:     bookingRepo,
	}
}

func (s *BookingServiceImpl) MyTours(ctx context.Context, db *gorm.DB, userID string) ([]models.Tour, error) {
	tours, err := s.bookingRepo.FindToursBookedBy(ctx, db, userID)
	if err != nil {
		return nil, translateRecordError("booking", err)
	}
	return tours, nil
}
