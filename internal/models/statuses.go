package models

type UserRole string
type TourDifficulty string

const (
	UserRoleUser      UserRole = "user"
	UserRoleGuide     UserRole = "guide"
	UserRoleLeadGuide UserRole = "lead-guide"
	UserRoleAdmin     UserRole = "admin"

	TourDifficultyEasy      TourDifficulty = "easy"
	TourDifficultyMedium    TourDifficulty = "medium"
	TourDifficultyDifficult TourDifficulty = "difficult"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleGuide, UserRoleLeadGuide, UserRoleAdmin:
		return true
	}
	return false
}

func (d TourDifficulty) Valid() bool {
	switch d {
	case TourDifficultyEasy, TourDifficultyMedium, TourDifficultyDifficult:
		return true
	}
	return false
}
