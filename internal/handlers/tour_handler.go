package handlers

import (
	"net/http"

	"tourhub_backend/internal/services"
	"tourhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TourHandler struct {
	*BaseHandler
	tourService services.TourService
}

func NewTourHandler(base *BaseHandler, tourService services.TourService) *TourHandler {
	return &TourHandler{
		BaseHandler: base,
		tourService: tourService,
	}
}

// ListTours godoc
// @Summary List public tours
// @Tags tours
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Param sort query string false "Comma separated fields, '-' for descending" example(price,-ratingsAverage)
// @Param difficulty query string false "Filter by difficulty"
// @Success 200 {object} dto.ListResponse[models.Tour]
// @Router /api/v1/tours [get]
func (h *TourHandler) ListTours(c *gin.Context) {
	opts := ParseListOptions(c)

	tours, total, err := h.tourService.List(c.Request.Context(), h.GetDB(c), opts)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(tours, total, opts.Page, opts.Limit))
}

// GetTour godoc
// @Summary Get a tour by id
// @Tags tours
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} dto.DataResponse[models.Tour]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/tours/{id} [get]
func (h *TourHandler) GetTour(c *gin.Context) {
	tour, err := h.tourService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(tour))
}

// CreateTour godoc
// @Summary Create a tour (admin, lead-guide)
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTourRequest true "Tour"
// @Success 201 {object} dto.DataResponse[models.Tour]
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/tours [post]
func (h *TourHandler) CreateTour(c *gin.Context) {
	var req dto.CreateTourRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tour := req.Model()
	if err := h.tourService.Create(c.Request.Context(), h.GetDB(c), tour); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse(tour))
}

// UpdateTour godoc
// @Summary Update a tour (admin, lead-guide)
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param body body dto.UpdateTourRequest true "Fields to change"
// @Success 200 {object} dto.DataResponse[models.Tour]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/tours/{id} [patch]
func (h *TourHandler) UpdateTour(c *gin.Context) {
	var req dto.UpdateTourRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tour, err := h.tourService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Fields())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(tour))
}

// DeleteTour godoc
// @Summary Delete a tour (admin, lead-guide)
// @Tags tours
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 204
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/tours/{id} [delete]
func (h *TourHandler) DeleteTour(c *gin.Context) {
	if err := h.tourService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
