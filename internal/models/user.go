package models

import (
	"strings"
	"time"
)

// User is the persisted identity. Secret columns never leave the process:
// PasswordHash and PasswordResetToken are excluded from JSON and from
// the default repository reads.
type User struct {
	BaseModel
	Name  string   `gorm:"type:varchar(100);not null" json:"name"`
	Email string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Photo string   `gorm:"type:varchar(255);default:'default.jpg'" json:"photo"`
	Role  UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	PasswordHash         string     `gorm:"type:varchar(72);not null" json:"-"`
	PasswordChangedAt    *time.Time `json:"-"`
	PasswordResetToken   *string    `gorm:"type:varchar(64);index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	Active bool `gorm:"not null;default:true;index" json:"-"`
}

// HasRole reports whether the user's role is in roles.
func (u *User) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
