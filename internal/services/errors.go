package services

import (
	"errors"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// translateUserError maps credential-store errors onto the API taxonomy.
func translateUserError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrResetTokenInvalid):
		return apperrors.ErrResetTokenInvalid
	case errors.Is(err, repositories.ErrNoProfileChanges):
		return apperrors.NewBadRequestError("No profile fields to update")
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
		return apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}

func translateRecordError(domain string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrRecordNotFound), errors.Is(err, repositories.ErrTourNotFound):
		return apperrors.NewNotFoundError(domain, "No "+domain+" found with that ID")
	case errors.Is(err, repositories.ErrDuplicateRecord):
		return apperrors.NewConflictError(domain, "A "+domain+" with these values already exists")
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
