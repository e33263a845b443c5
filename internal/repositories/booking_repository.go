package repositories

import (
	"context"

	"tourhub_backend/internal/models"

	"gorm.io/gorm"
)

type BookingRepository interface {
	CRUDRepository[models.Booking]
	FindToursBookedBy(ctx context.Context, db *gorm.DB, userID string) ([]models.Tour, error)
}

type BookingRepositoryImpl struct {
	*CRUDRepositoryImpl[models.Booking]
}

var bookingColumns = map[string]string{
	"tour":      "tour_id",
	"user":      "user_id",
	"price":     "price",
	"paid":      "paid",
	"createdAt": "created_at",
}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{CRUDRepositoryImpl: NewCRUDRepository[models.Booking](bookingColumns)}
}

func (r *BookingRepositoryImpl) FindToursBookedBy(ctx context.Context, db *gorm.DB, userID string) ([]models.Tour, error) {
	var tours []models.Tour
	err := db.WithContext(ctx).
		Where("id IN (?)", db.Model(&models.Booking{}).Select("tour_id").Where("user_id = ?", userID)).
		Find(&tours).Error
	return tours, err
}
