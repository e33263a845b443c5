package handlers

import (
	"net/http"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/services"
	"tourhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// GetMe godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DataResponse[dto.UserEnvelope]
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), h.GetDB(c), current.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// UpdateMe godoc
// @Summary Update name, email or photo of the current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateMeRequest true "Profile fields"
// @Success 200 {object} dto.DataResponse[dto.UserEnvelope]
// @Failure 400 {object} apperrors.ErrorResponse "Password fields are not accepted here"
// @Router /api/v1/users/updateMe [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateMeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), h.GetDB(c), current.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// DeleteMe godoc
// @Summary Deactivate the current user
// @Tags users
// @Security BearerAuth
// @Success 204
// @Router /api/v1/users/deleteMe [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteMe(c.Request.Context(), h.GetDB(c), current.ID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers godoc
// @Summary List active users (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListResponse[models.User]
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := ParsePagination(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), h.GetDB(c), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(users, total, page, limit))
}

// GetUser godoc
// @Summary Get an active user by id (admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.DataResponse[dto.UserEnvelope]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

func userResponse(user *models.User) dto.DataResponse[dto.UserEnvelope] {
	return dto.DataResponse[dto.UserEnvelope]{
		Status: "success",
		Data:   dto.UserEnvelope{User: user},
	}
}

func dataResponse[T any](data T) dto.DataResponse[T] {
	return dto.DataResponse[T]{Status: "success", Data: data}
}

func listResponse[T any](items []T, total int64, page, limit int) dto.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return dto.ListResponse[T]{
		Status:  "success",
		Results: len(items),
		Total:   total,
		Page:    page,
		Limit:   limit,
		Data:    items,
	}
}
