package dto

type CreateReviewRequest struct {
	Review string `json:"review" validate:"required,max=2000"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	TourID string `json:"tour" validate:"omitempty,uuid"`
}

type UpdateReviewRequest struct {
	Review *string `json:"review" validate:"omitempty,min=1,max=2000"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (r *UpdateReviewRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Review != nil {
		fields["review"] = *r.Review
	}
	if r.Rating != nil {
		fields["rating"] = *r.Rating
	}
	return fields
}
