package routes

import (
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(api *gin.RouterGroup, h *handlers.AppHandlers, authMW *middleware.AuthMiddleware) {
	bookings := api.Group("/bookings")
	bookings.Use(authMW.Protect())
	{
		bookings.GET("/my-tours", h.BookingHandler.MyTours)
	}

	staff := bookings.Group("")
	staff.Use(middleware.RestrictTo(models.UserRoleAdmin, models.UserRoleLeadGuide))
	{
		staff.GET("", h.BookingHandler.ListBookings)
		staff.POST("", h.BookingHandler.CreateBooking)
		staff.GET("/:id", h.BookingHandler.GetBooking)
		staff.PATCH("/:id", h.BookingHandler.UpdateBooking)
		staff.DELETE("/:id", h.BookingHandler.DeleteBooking)
	}
}
