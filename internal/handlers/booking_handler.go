package handlers

import (
	"net/http"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/services"
	"tourhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

// MyTours godoc
// @Summary Tours booked by the current user
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DataResponse[[]models.Tour]
// @Router /api/v1/bookings/my-tours [get]
func (h *BookingHandler) MyTours(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	tours, err := h.bookingService.MyTours(c.Request.Context(), h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if tours == nil {
		tours = []models.Tour{}
	}

	c.JSON(http.StatusOK, dataResponse(tours))
}

// ListBookings godoc
// @Summary List bookings (admin, lead-guide)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(100)
// @Param tour query string false "Filter by tour id"
// @Param user query string false "Filter by user id"
// @Success 200 {object} dto.ListResponse[models.Booking]
// @Router /api/v1/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	opts := ParseListOptions(c)

	bookings, total, err := h.bookingService.List(c.Request.Context(), h.GetDB(c), opts)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(bookings, total, opts.Page, opts.Limit))
}

// GetBooking godoc
// @Summary Get a booking (admin, lead-guide)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.DataResponse[models.Booking]
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(booking))
}

// CreateBooking godoc
// @Summary Record a booking (admin, lead-guide)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.DataResponse[models.Booking]
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking := &models.Booking{
		TourID: req.TourID,
		UserID: req.UserID,
		Price:  req.Price,
		Paid:   true,
	}
	if req.Paid != nil {
		booking.Paid = *req.Paid
	}
	if err := h.bookingService.Create(c.Request.Context(), h.GetDB(c), booking); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse(booking))
}

// UpdateBooking godoc
// @Summary Update a booking (admin, lead-guide)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param body body dto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} dto.DataResponse[models.Booking]
// @Router /api/v1/bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Fields())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse(booking))
}

// DeleteBooking godoc
// @Summary Delete a booking (admin, lead-guide)
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Router /api/v1/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookingService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
