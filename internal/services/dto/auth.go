package dto

import "tourhub_backend/internal/models"

type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,password-bytes"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,password-bytes"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,password-bytes"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// AuthResult is a freshly issued token and the identity it was issued to.
type AuthResult struct {
	Token string
	User  *models.User
}

// TokenResponse is the body of every endpoint that issues a token.
type TokenResponse struct {
	Status string        `json:"status"`
	Token  string        `json:"token"`
	Data   *UserEnvelope `json:"data,omitempty"`
}

type UserEnvelope struct {
	User *models.User `json:"user"`
}

type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
