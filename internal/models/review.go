package models

type Review struct {
	BaseModel
	Review string `gorm:"type:text;not null" json:"review"`
	Rating int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	TourID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_tour_user" json:"tour"`
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_tour_user" json:"user"`

	User *User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
