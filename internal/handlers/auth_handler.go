package handlers

import (
	"net/http"
	"time"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/services"
	"tourhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookieTTL   time.Duration
	now         func() time.Time
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookieTTL time.Duration, now func() time.Time) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookieTTL:   cookieTTL,
		now:         now,
	}
}

// Signup godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Account data"
// @Success 201 {object} dto.TokenResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already registered"
// @Router /api/v1/users/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), h.GetDB(c), &req, BaseURL(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.sendToken(c, http.StatusCreated, result)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} apperrors.ErrorResponse "Missing email or password"
// @Failure 401 {object} apperrors.ErrorResponse "Incorrect email or password"
// @Router /api/v1/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, result)
}

// Logout godoc
// @Summary Replace the session cookie with a short-lived sentinel
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /api/v1/users/logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c.Writer, c.Request, h.now())
	c.JSON(http.StatusOK, dto.MessageResponse{Status: "success"})
}

// ForgotPassword godoc
// @Summary Email a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse "No user with that email"
// @Failure 500 {object} apperrors.ErrorResponse "Email could not be sent"
// @Router /api/v1/users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), h.GetDB(c), req.Email, BaseURL(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Status:  "success",
		Message: "Token sent to email!",
	})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token from the email"
// @Param body body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} apperrors.ErrorResponse "Token is invalid or has expired"
// @Router /api/v1/users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.ResetPassword(c.Request.Context(), h.GetDB(c), c.Param("token"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.sendToken(c, http.StatusOK, result)
}

// UpdateMyPassword godoc
// @Summary Change the password of the logged-in user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} apperrors.ErrorResponse "Current password is wrong"
// @Router /api/v1/users/updateMyPassword [patch]
func (h *AuthHandler) UpdateMyPassword(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.UpdatePassword(c.Request.Context(), h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Password changed", "user_id", user.ID)
	h.sendToken(c, http.StatusOK, result)
}

// sendToken delivers a fresh token both as the session cookie and in the body.
func (h *AuthHandler) sendToken(c *gin.Context, status int, result *dto.AuthResult) {
	auth.SetSessionCookie(c.Writer, c.Request, result.Token, h.cookieTTL, h.now())
	c.JSON(status, dto.TokenResponse{
		Status: "success",
		Token:  result.Token,
		Data:   &dto.UserEnvelope{User: result.User},
	})
}
