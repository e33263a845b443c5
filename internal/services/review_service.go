package services

import (
	"context"
	"log/slog"
	"math"

	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/services/dto"
	"tourhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultRatingsAverage = 4.5

var ErrAlreadyReviewed = apperrors.NewConflictError("review", "You have already reviewed this tour")

type ReviewService interface {
	List(ctx context.Context, db *gorm.DB, tourID string, opts repositories.ListOptions) ([]models.Review, int64, error)
	Get(ctx context.Context, db *gorm.DB, reviewID string) (*models.Review, error)
	Create(ctx context.Context, db *gorm.DB, author *models.User, tourID string, req *dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, db *gorm.DB, actor *models.User, reviewID string, req *dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, db *gorm.DB, actor *models.User, reviewID string) error
}

type ReviewServiceImpl struct {
	reviewRepo repositories.ReviewRepository
	tourRepo   repositories.TourRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, tourRepo repositories.TourRepository) ReviewService {
	return &ReviewServiceImpl{reviewRepo: reviewRepo, tourRepo: tourRepo}
}

func (s *ReviewServiceImpl) List(ctx context.Context, db *gorm.DB, tourID string, opts repositories.ListOptions) ([]models.Review, int64, error) {
	if tourID != "" {
		if opts.Filters == nil {
			opts.Filters = map[string]interface{}{}
		}
		opts.Filters["tour"] = tourID
	}
	reviews, total, err := s.reviewRepo.List(ctx, db, opts)
	if err != nil {
		return nil, 0, translateRecordError("review", err)
	}
	return reviews, total, nil
}

func (s *ReviewServiceImpl) Get(ctx context.Context, db *gorm.DB, reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, db, reviewID)
	if err != nil {
		return nil, translateRecordError("review", err)
	}
	return review, nil
}

// Create writes one review per (tour, author) and refreshes the tour's ratings.
func (s *ReviewServiceImpl) Create(ctx context.Context, db *gorm.DB, author *models.User, tourID string, req *dto.CreateReviewRequest) (*models.Review, error) {
	if tourID == "" {
		tourID = req.TourID
	}
	if tourID == "" {
		return nil, apperrors.ValidationError(map[string]string{"tour": "This field is required"})
	}
	if _, err := s.tourRepo.FindByID(ctx, db, tourID); err != nil {
		return nil, translateRecordError("tour", err)
	}

	exists, err := s.reviewRepo.ExistsForTourAndUser(ctx, db, tourID, author.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{Review: req.Review, Rating: req.Rating, TourID: tourID, UserID: author.ID}
	if err := s.reviewRepo.Create(ctx, db, review); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, ErrAlreadyReviewed
		}
		return nil, translateRecordError("review", err)
	}

	s.refreshRatings(ctx, db, tourID)
	return review, nil
}

func (s *ReviewServiceImpl) Update(ctx context.Context, db *gorm.DB, actor *models.User, reviewID string, req *dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.owned(ctx, db, actor, reviewID)
	if err != nil {
		return nil, err
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return review, nil
	}
	updated, err := s.reviewRepo.Update(ctx, db, reviewID, fields)
	if err != nil {
		return nil, translateRecordError("review", err)
	}

	s.refreshRatings(ctx, db, review.TourID)
	return updated, nil
}

func (s *ReviewServiceImpl) Delete(ctx context.Context, db *gorm.DB, actor *models.User, reviewID string) error {
	review, err := s.owned(ctx, db, actor, reviewID)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, db, reviewID); err != nil {
		return translateRecordError("review", err)
	}

	s.refreshRatings(ctx, db, review.TourID)
	return nil
}

// owned loads a review the actor may change: its author, or any admin.
func (s *ReviewServiceImpl) owned(ctx context.Context, db *gorm.DB, actor *models.User, reviewID string) (*models.Review, error) {
	review, err := s.Get(ctx, db, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return review, nil
}

// refreshRatings recomputes a tour's ratings. A failure is logged; the review
// write it follows has already succeeded.
func (s *ReviewServiceImpl) refreshRatings(ctx context.Context, db *gorm.DB, tourID string) {
	stats, err := s.reviewRepo.RatingStats(ctx, db, tourID)
	if err == nil {
		quantity, average := ratingsFor(stats)
		err = s.tourRepo.UpdateRatings(ctx, db, tourID, quantity, average)
	}
	if err != nil {
		logger.FromContext(ctx).Error("Failed to refresh tour ratings", slog.String("tour_id", tourID), slog.Any("error", err))
	}
}

func ratingsFor(stats *repositories.RatingStats) (int64, float64) {
	if stats.Quantity == 0 {
		return 0, defaultRatingsAverage
	}
	return stats.Quantity, math.Round(stats.Average*10) / 10
}
