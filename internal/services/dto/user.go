package dto

// UpdateMeRequest carries profile fields only. Password fields are declared so
// their presence can be rejected with a pointer to /updateMyPassword.
type UpdateMeRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Photo           *string `json:"photo" validate:"omitempty,max=255"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

func (r *UpdateMeRequest) HasPasswordFields() bool {
	return r.Password != nil || r.PasswordConfirm != nil
}
