package routes

import (
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupTourRoutes(api *gin.RouterGroup, h *handlers.AppHandlers, authMW *middleware.AuthMiddleware) {
	tours := api.Group("/tours")
	{
		tours.GET("", h.TourHandler.ListTours)
		tours.GET("/:id", h.TourHandler.GetTour)
	}

	staff := tours.Group("")
	staff.Use(authMW.Protect(models.UserRoleAdmin, models.UserRoleLeadGuide))
	{
		staff.POST("", h.TourHandler.CreateTour)
		staff.PATCH("/:id", h.TourHandler.UpdateTour)
		staff.DELETE("/:id", h.TourHandler.DeleteTour)
	}

	// reviews nested under a tour
	nested := tours.Group("/:id/reviews")
	{
		nested.GET("", h.ReviewHandler.ListReviews)
		nested.POST("", authMW.Protect(models.UserRoleUser), h.ReviewHandler.CreateReview)
	}
}
