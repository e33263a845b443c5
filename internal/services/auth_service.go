package services

import (
	"context"
	"log/slog"
	"strings"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/services/dto"
	"tourhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// PasswordVerifier checks a plaintext against a stored digest.
type PasswordVerifier interface {
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

type AuthService interface {
	Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest, baseURL string) (*dto.AuthResult, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResult, error)
	UpdatePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) (*dto.AuthResult, error)
	ForgotPassword(ctx context.Context, db *gorm.DB, email, baseURL string) error
	ResetPassword(ctx context.Context, db *gorm.DB, plaintextToken string, req *dto.ResetPasswordRequest) (*dto.AuthResult, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	verifier PasswordVerifier
	tokens   *auth.TokenIssuer
	notifier Notifier
}

func NewAuthService(
	userRepo repositories.UserRepository,
	verifier PasswordVerifier,
	tokens *auth.TokenIssuer,
	notifier Notifier,
) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		verifier: verifier,
		tokens:   tokens,
		notifier: notifier,
	}
}

// Signup creates a standard-role identity and logs it in. A failed welcome
// email is logged and does not fail the signup.
func (s *AuthServiceImpl) Signup(ctx context.Context, db *gorm.DB, req *dto.SignupRequest, baseURL string) (*dto.AuthResult, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: req.Email,
		Role:  models.UserRoleUser,
	}
	if err := s.userRepo.Create(ctx, db, user, req.Password); err != nil {
		return nil, translateUserError(err)
	}

	if err := s.notifier.SendWelcome(ctx, user, baseURL+"/me"); err != nil {
		logger.FromContext(ctx).Warn("Welcome email failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResult, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindActiveByEmailWithSecrets(ctx, db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	ok, err := s.verifier.Verify(ctx, req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// UpdatePassword re-verifies the current password, writes the new one and
// returns a token minted after the change. Older tokens become stale.
func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdatePasswordRequest) (*dto.AuthResult, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindActiveByIDWithSecrets(ctx, db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrIdentityGone
		}
		return nil, apperrors.InternalError(err)
	}

	ok, err := s.verifier.Verify(ctx, req.PasswordCurrent, user.PasswordHash)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !ok {
		return nil, apperrors.ErrIncorrectPassword
	}

	now := s.tokens.Now()
	if err := s.userRepo.SetPassword(ctx, db, user.ID, req.Password, now); err != nil {
		return nil, translateUserError(err)
	}
	user.PasswordChangedAt = &now
	user.PasswordHash = ""
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil

	return s.issue(user)
}

// ForgotPassword stores a fresh reset token and mails its plaintext. If the
// mail cannot be handed off the stored token is cleared again.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, email, baseURL string) error {
	user, err := s.userRepo.FindActiveByEmail(ctx, db, email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrEmailNotFound
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.GenerateResetToken(s.tokens.Now())
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetResetToken(ctx, db, user.ID, token.Hash, token.Expires); err != nil {
		return translateUserError(err)
	}

	resetURL := baseURL + "/api/v1/users/resetPassword/" + token.Plaintext
	if err := s.notifier.SendPasswordReset(ctx, user, resetURL); err != nil {
		rollbackCtx := context.WithoutCancel(ctx)
		if clearErr := s.userRepo.ClearResetToken(rollbackCtx, db, user.ID); clearErr != nil {
			logger.FromContext(ctx).Error("Failed to roll back reset token",
				slog.String("user_id", user.ID), slog.Any("error", clearErr))
		}
		return apperrors.ErrEmailDelivery.WithError(err)
	}
	return nil
}

// ResetPassword consumes a reset token and logs the user in with the new password.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, plaintextToken string, req *dto.ResetPasswordRequest) (*dto.AuthResult, error) {
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if plaintextToken == "" {
		return nil, apperrors.ErrResetTokenInvalid
	}

	user, err := s.userRepo.ConsumeResetToken(ctx, db, auth.HashResetToken(plaintextToken), req.Password, s.tokens.Now())
	if err != nil {
		return nil, translateUserError(err)
	}
	return s.issue(user)
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.PasswordHash = ""
	return &dto.AuthResult{Token: token, User: user}, nil
}
