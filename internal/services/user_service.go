package services

import (
	"context"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/services/dto"
	"tourhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetMe(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
	UpdateMe(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateMeRequest) (*models.User, error)
	DeleteMe(ctx context.Context, db *gorm.DB, userID string) error

	GetUser(ctx context.Context, db *gorm.DB, userID string) (*models.User, error)
	ListUsers(ctx context.Context, db *gorm.DB, page, limit int) ([]models.User, int64, error)

	// EnsureAdmin creates an admin identity unless the email is already taken.
	EnsureAdmin(ctx context.Context, db *gorm.DB, name, email, password string) (bool, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetMe(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, db, userID)
	return user, translateUserError(err)
}

func (s *UserServiceImpl) UpdateMe(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateMeRequest) (*models.User, error) {
	if req.HasPasswordFields() {
		return nil, apperrors.NewBadRequestError("This route is not for password updates. Please use /updateMyPassword.")
	}
	user, err := s.userRepo.UpdateProfile(ctx, db, userID, repositories.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	})
	return user, translateUserError(err)
}

func (s *UserServiceImpl) DeleteMe(ctx context.Context, db *gorm.DB, userID string) error {
	return translateUserError(s.userRepo.Deactivate(ctx, db, userID))
}

func (s *UserServiceImpl) GetUser(ctx context.Context, db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindActiveByID(ctx, db, userID)
	return user, translateUserError(err)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, db *gorm.DB, page, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.ListActive(ctx, db, page, limit)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return users, total, nil
}

func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, db *gorm.DB, name, email, password string) (bool, error) {
	err := s.userRepo.Create(ctx, db, &models.User{Name: name, Email: email, Role: models.UserRoleAdmin}, password)
	switch {
	case err == nil:
		return true, nil
	case apperrors.Is(err, repositories.ErrUserAlreadyExists):
		return false, nil
	default:
		return false, err
	}
}
