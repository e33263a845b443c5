package routes

import (
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(api *gin.RouterGroup, h *handlers.AppHandlers, authMW *middleware.AuthMiddleware) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("", h.ReviewHandler.ListReviews)
		reviews.GET("/:id", h.ReviewHandler.GetReview)
	}

	authed := reviews.Group("")
	authed.Use(authMW.Protect())
	{
		authed.POST("", middleware.RestrictTo(models.UserRoleUser), h.ReviewHandler.CreateReview)
		authed.PATCH("/:id", middleware.RestrictTo(models.UserRoleUser, models.UserRoleAdmin), h.ReviewHandler.UpdateReview)
		authed.DELETE("/:id", middleware.RestrictTo(models.UserRoleUser, models.UserRoleAdmin), h.ReviewHandler.DeleteReview)
	}
}
