package dto

import (
	"time"

	"tourhub_backend/internal/models"

	"gorm.io/datatypes"
)

type CreateTourRequest struct {
	Name          string      `json:"name" validate:"required,min=10,max=40"`
	Duration      int         `json:"duration" validate:"required,min=1"`
	MaxGroupSize  int         `json:"maxGroupSize" validate:"required,min=1"`
	Difficulty    string      `json:"difficulty" validate:"required,is-difficulty"`
	Price         float64     `json:"price" validate:"required,gt=0"`
	PriceDiscount float64     `json:"priceDiscount" validate:"omitempty,gte=0,ltfield=Price"`
	Summary       string      `json:"summary" validate:"required,max=255"`
	Description   string      `json:"description"`
	ImageCover    string      `json:"imageCover" validate:"required"`
	Images        []string    `json:"images"`
	StartDates    []time.Time `json:"startDates"`
	Guides        []string    `json:"guides" validate:"omitempty,dive,uuid"`
	SecretTour    bool        `json:"secretTour"`
}

func (r *CreateTourRequest) Model() *models.Tour {
	return &models.Tour{
		Name:          r.Name,
		Duration:      r.Duration,
		MaxGroupSize:  r.MaxGroupSize,
		Difficulty:    models.TourDifficulty(r.Difficulty),
		Price:         r.Price,
		PriceDiscount: r.PriceDiscount,
		Summary:       r.Summary,
		Description:   r.Description,
		ImageCover:    r.ImageCover,
		Images:        datatypes.JSONSlice[string](r.Images),
		StartDates:    datatypes.JSONSlice[time.Time](r.StartDates),
		GuideIDs:      datatypes.JSONSlice[string](r.Guides),
		SecretTour:    r.SecretTour,
	}
}

type UpdateTourRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=10,max=40"`
	Duration      *int     `json:"duration" validate:"omitempty,min=1"`
	MaxGroupSize  *int     `json:"maxGroupSize" validate:"omitempty,min=1"`
	Difficulty    *string  `json:"difficulty" validate:"omitempty,is-difficulty"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	PriceDiscount *float64 `json:"priceDiscount" validate:"omitempty,gte=0"`
	Summary       *string  `json:"summary" validate:"omitempty,max=255"`
	Description   *string  `json:"description"`
	ImageCover    *string  `json:"imageCover"`
	SecretTour    *bool    `json:"secretTour"`
}

func (r *UpdateTourRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Duration != nil {
		fields["duration"] = *r.Duration
	}
	if r.MaxGroupSize != nil {
		fields["max_group_size"] = *r.MaxGroupSize
	}
	if r.Difficulty != nil {
		fields["difficulty"] = *r.Difficulty
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.PriceDiscount != nil {
		fields["price_discount"] = *r.PriceDiscount
	}
	if r.Summary != nil {
		fields["summary"] = *r.Summary
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.ImageCover != nil {
		fields["image_cover"] = *r.ImageCover
	}
	if r.SecretTour != nil {
		fields["secret_tour"] = *r.SecretTour
	}
	return fields
}
