package repositories

import (
	"context"

	"tourhub_backend/internal/models"

	"gorm.io/gorm"
)

// RatingStats is the aggregate over a tour's reviews.
type RatingStats struct {
	Quantity int64
	Average  float64
}

type ReviewRepository interface {
	CRUDRepository[models.Review]
	ExistsForTourAndUser(ctx context.Context, db *gorm.DB, tourID, userID string) (bool, error)
	RatingStats(ctx context.Context, db *gorm.DB, tourID string) (*RatingStats, error)
}

type ReviewRepositoryImpl struct {
	*CRUDRepositoryImpl[models.Review]
}

var reviewColumns = map[string]string{
	"tour":      "tour_id",
	"user":      "user_id",
	"rating":    "rating",
	"createdAt": "created_at",
}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{CRUDRepositoryImpl: NewCRUDRepository[models.Review](reviewColumns)}
}

// List includes each review's author name and photo.
func (r *ReviewRepositoryImpl) List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]models.Review, int64, error) {
	return r.CRUDRepositoryImpl.List(ctx, db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "photo")
	}), opts)
}

func (r *ReviewRepositoryImpl) ExistsForTourAndUser(ctx context.Context, db *gorm.DB, tourID, userID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.Review{}).
		Where("tour_id = ? AND user_id = ?", tourID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) RatingStats(ctx context.Context, db *gorm.DB, tourID string) (*RatingStats, error) {
	var stats RatingStats
	err := db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS quantity, COALESCE(AVG(rating), 0) AS average").
		Where("tour_id = ?", tourID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
