package validator

import (
	"log"

	"tourhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-difficulty", validateDifficulty)
	mustRegister("password-bytes", validatePasswordBytes)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).Valid()
}

func validateDifficulty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.TourDifficulty(value).Valid()
}

// validatePasswordBytes caps length in bytes, which is what bcrypt limits;
// the builtin max counts runes.
func validatePasswordBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= 72
}
