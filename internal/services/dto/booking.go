package dto

type CreateBookingRequest struct {
	TourID string  `json:"tour" validate:"required,uuid"`
	UserID string  `json:"user" validate:"required,uuid"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Paid   *bool   `json:"paid"`
}

type UpdateBookingRequest struct {
	Price *float64 `json:"price" validate:"omitempty,gt=0"`
	Paid  *bool    `json:"paid"`
}

func (r *UpdateBookingRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Paid != nil {
		fields["paid"] = *r.Paid
	}
	return fields
}
