package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/services/dto"
	"tourhub_backend/pkg/apperrors"
)

type memReviews struct {
	repositories.ReviewRepository
	reviews map[string]*models.Review
	nextID  int
}

func (m *memReviews) FindByID(_ context.Context, _ *gorm.DB, id string) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	c := *r
	return &c, nil
}

func (m *memReviews) Create(_ context.Context, _ *gorm.DB, r *models.Review) error {
	m.nextID++
	r.ID = string(rune('a' + m.nextID))
	c := *r
	m.reviews[r.ID] = &c
	return nil
}

func (m *memReviews) Update(_ context.Context, _ *gorm.DB, id string, fields map[string]interface{}) (*models.Review, error) {
	r := m.reviews[id]
	if v, ok := fields["rating"].(int); ok {
		r.Rating = v
	}
	c := *r
	return &c, nil
}

func (m *memReviews) Delete(_ context.Context, _ *gorm.DB, id string) error {
	delete(m.reviews, id)
	return nil
}

func (m *memReviews) ExistsForTourAndUser(_ context.Context, _ *gorm.DB, tourID, userID string) (bool, error) {
	for _, r := range m.reviews {
		if r.TourID == tourID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) RatingStats(_ context.Context, _ *gorm.DB, tourID string) (*repositories.RatingStats, error) {
	var stats repositories.RatingStats
	sum := 0
	for _, r := range m.reviews {
		if r.TourID == tourID {
			stats.Quantity++
			sum += r.Rating
		}
	}
	if stats.Quantity > 0 {
		stats.Average = float64(sum) / float64(stats.Quantity)
	}
	return &stats, nil
}

type memTours struct {
	repositories.TourRepository
	tours map[string]*models.Tour
}

func (m *memTours) FindByID(_ context.Context, _ *gorm.DB, id string) (*models.Tour, error) {
	t, ok := m.tours[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return t, nil
}

func (m *memTours) UpdateRatings(_ context.Context, _ *gorm.DB, tourID string, quantity int64, average float64) error {
	m.tours[tourID].RatingsQuantity = int(quantity)
	m.tours[tourID].RatingsAverage = average
	return nil
}

func newReviewFixture() (*memTours, ReviewService) {
	tours := &memTours{tours: map[string]*models.Tour{"t1": {BaseModel: models.BaseModel{ID: "t1"}, RatingsAverage: 4.5}}}
	reviews := &memReviews{reviews: map[string]*models.Review{}}
	return tours, NewReviewService(reviews, tours)
}

func reviewer(id string, role models.UserRole) *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: id}, Role: role}
}

func TestReviewService_RatingsFollowReviews(t *testing.T) {
	tours, svc := newReviewFixture()
	ctx := context.Background()

	r1, err := svc.Create(ctx, nil, reviewer("u1", models.UserRoleUser), "t1", &dto.CreateReviewRequest{Review: "Great", Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, reviewer("u2", models.UserRoleUser), "t1", &dto.CreateReviewRequest{Review: "Fine", Rating: 4})
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, reviewer("u3", models.UserRoleUser), "t1", &dto.CreateReviewRequest{Review: "Meh", Rating: 4})
	require.NoError(t, err)

	assert.Equal(t, 3, tours.tours["t1"].RatingsQuantity)
	assert.Equal(t, 4.3, tours.tours["t1"].RatingsAverage)

	rating := 1
	_, err = svc.Update(ctx, nil, reviewer("u1", models.UserRoleUser), r1.ID, &dto.UpdateReviewRequest{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 3.0, tours.tours["t1"].RatingsAverage)
}

func TestReviewService_DeleteLastResetsDefaults(t *testing.T) {
	tours, svc := newReviewFixture()
	ctx := context.Background()

	r, err := svc.Create(ctx, nil, reviewer("u1", models.UserRoleUser), "t1", &dto.CreateReviewRequest{Review: "Great", Rating: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, nil, reviewer("admin", models.UserRoleAdmin), r.ID))

	assert.Equal(t, 0, tours.tours["t1"].RatingsQuantity)
	assert.Equal(t, 4.5, tours.tours["t1"].RatingsAverage)
}

func TestReviewService_OnePerTourAndUser(t *testing.T) {
	_, svc := newReviewFixture()
	ctx := context.Background()
	u := reviewer("u1", models.UserRoleUser)

	_, err := svc.Create(ctx, nil, u, "t1", &dto.CreateReviewRequest{Review: "Great", Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, u, "t1", &dto.CreateReviewRequest{Review: "Again", Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestReviewService_Ownership(t *testing.T) {
	_, svc := newReviewFixture()
	ctx := context.Background()

	r, err := svc.Create(ctx, nil, reviewer("u1", models.UserRoleUser), "t1", &dto.CreateReviewRequest{Review: "Great", Rating: 5})
	require.NoError(t, err)

	err = svc.Delete(ctx, nil, reviewer("u2", models.UserRoleUser), r.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestReviewService_UnknownTour(t *testing.T) {
	_, svc := newReviewFixture()
	_, err := svc.Create(context.Background(), nil, reviewer("u1", models.UserRoleUser), "missing", &dto.CreateReviewRequest{Review: "x", Rating: 3})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
