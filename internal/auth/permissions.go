package auth

import (
	"errors"
	"time"

	"tourhub_backend/internal/models"
)

var ErrInvalidRole = errors.New("invalid role")

func ValidateRole(role string) error {
	if !models.UserRole(role).Valid() {
		return ErrInvalidRole
	}
	return nil
}

// Allowed reports whether role is in allowed. Pure; no I/O.
func Allowed(role models.UserRole, allowed ...models.UserRole) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// IsStale reports whether a token issued at issuedAt predates the last
// password change. Both sides are compared in whole seconds because iat is
// encoded with second resolution.
func IsStale(passwordChangedAt *time.Time, issuedAt time.Time) bool {
	if passwordChangedAt == nil {
		return false
	}
	return passwordChangedAt.Unix() > issuedAt.Unix()
}
