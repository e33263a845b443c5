package models

type Booking struct {
	BaseModel
	TourID string  `gorm:"type:varchar(36);not null;index" json:"tour"`
	UserID string  `gorm:"type:varchar(36);not null;index" json:"user"`
	Price  float64 `gorm:"not null" json:"price"`
	Paid   bool    `gorm:"not null" json:"paid"`

	Tour *Tour `gorm:"foreignKey:TourID" json:"tourDetails,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
