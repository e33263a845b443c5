package repositories

import (
	"context"
	"errors"

	"tourhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTourNotFound = errors.New("tour not found")

type TourRepository interface {
	CRUDRepository[models.Tour]
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Tour, error)
	UpdateRatings(ctx context.Context, db *gorm.DB, tourID string, quantity int64, average float64) error
}

type TourRepositoryImpl struct {
	*CRUDRepositoryImpl[models.Tour]
}

var tourColumns = map[string]string{
	"name":            "name",
	"duration":        "duration",
	"maxGroupSize":    "max_group_size",
	"difficulty":      "difficulty",
	"price":           "price",
	"ratingsAverage":  "ratings_average",
	"ratingsQuantity": "ratings_quantity",
	"createdAt":       "created_at",
}

func NewTourRepository() TourRepository {
	return &TourRepositoryImpl{CRUDRepositoryImpl: NewCRUDRepository[models.Tour](tourColumns)}
}

// Update keeps the slug in step with a renamed tour.
func (r *TourRepositoryImpl) Update(ctx context.Context, db *gorm.DB, id string, fields map[string]interface{}) (*models.Tour, error) {
	if name, ok := fields["name"].(string); ok {
		fields["slug"] = models.Slugify(name)
	}
	return r.CRUDRepositoryImpl.Update(ctx, db, id, fields)
}

// List hides secret tours from public listings.
func (r *TourRepositoryImpl) List(ctx context.Context, db *gorm.DB, opts ListOptions) ([]models.Tour, int64, error) {
	return r.CRUDRepositoryImpl.List(ctx, db.Where("secret_tour = ?", false), opts)
}

func (r *TourRepositoryImpl) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*models.Tour, error) {
	var tour models.Tour
	err := db.WithContext(ctx).Where("slug = ? AND secret_tour = ?", slug, false).First(&tour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepositoryImpl) UpdateRatings(ctx context.Context, db *gorm.DB, tourID string, quantity int64, average float64) error {
	return db.WithContext(ctx).Model(&models.Tour{}).Where("id = ?", tourID).Updates(map[string]interface{}{
		"ratings_quantity": quantity,
		"ratings_average":  average,
	}).Error
}
