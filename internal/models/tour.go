package models

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	BaseModel
	Name            string                         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug            string                         `gorm:"type:varchar(120);uniqueIndex" json:"slug"`
	Duration        int                            `gorm:"not null" json:"duration"`
	MaxGroupSize    int                            `gorm:"not null" json:"maxGroupSize"`
	Difficulty      TourDifficulty                 `gorm:"type:varchar(20);not null" json:"difficulty"`
	RatingsAverage  float64                        `gorm:"not null;default:4.5" json:"ratingsAverage"`
	RatingsQuantity int                            `gorm:"not null;default:0" json:"ratingsQuantity"`
	Price           float64                        `gorm:"not null" json:"price"`
	PriceDiscount   float64                        `json:"priceDiscount,omitempty"`
	Summary         string                         `gorm:"type:varchar(255);not null" json:"summary"`
	Description     string                         `gorm:"type:text" json:"description"`
	ImageCover      string                         `gorm:"type:varchar(255)" json:"imageCover"`
	Images          datatypes.JSONSlice[string]    `json:"images"`
	StartDates      datatypes.JSONSlice[time.Time] `json:"startDates"`
	GuideIDs        datatypes.JSONSlice[string]    `json:"guides"`
	SecretTour      bool                           `gorm:"not null;default:false" json:"-"`
}

// BeforeSave keeps the slug in sync with the name.
func (t *Tour) BeforeSave(tx *gorm.DB) error {
	if t.Name != "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}

// Slugify lower-cases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
