package handlers

import (
	"net/http"

	"tourhub_backend/internal/services"
	"tourhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

// ListReviews godoc
// @Summary List reviews, optionally of one tour
// @Tags reviews
// @Produce json
// @Param id path string false "Tour ID (nested route only)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} dto.ListResponse[models.Review]
// @Router /api/v1/reviews [get]
// @Router /api/v1/tours/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	opts := ParseListOptions(c)

	reviews, total, err := h.reviewService.List(c.Request.Context(), h.GetDB(c), nestedTourID(c), opts)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(reviews, total, opts.Page, opts.Limit))
}

// GetReview godoc
// @Summary Get a review by id
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} dto.DataResponse[models.Review]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(review))
}

// CreateReview godoc
// @Summary Review a tour (role user)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string false "Tour ID (nested route only)"
// @Param body body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.DataResponse[models.Review]
// @Failure 409 {object} apperrors.ErrorResponse "Tour already reviewed"
// @Router /api/v1/reviews [post]
// @Router /api/v1/tours/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	author, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), h.GetDB(c), author, nestedTourID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse(review))
}

// UpdateReview godoc
// @Summary Edit a review (author or admin)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param body body dto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} dto.DataResponse[models.Review]
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(review))
}

// DeleteReview godoc
// @Summary Delete a review (author or admin)
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), h.GetDB(c), actor, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// nestedTourID is the tour id of /tours/:id/reviews; empty on /reviews.
func nestedTourID(c *gin.Context) string {
	return c.Param("id")
}
