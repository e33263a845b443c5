package routes

import (
	"time"

	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the router-level middleware.
type Options struct {
	RateLimit       int
	RateLimitWindow time.Duration
}

// RegisterRoutes mounts the API, the server-rendered pages and the system endpoints.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW *middleware.AuthMiddleware,
	opts Options,
) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	if opts.RateLimit > 0 {
		api.Use(middleware.NewRateLimiter(opts.RateLimit, opts.RateLimitWindow).Middleware())
	}
	{
		SetupUserRoutes(api, appHandlers, authMW)
		SetupTourRoutes(api, appHandlers, authMW)
		SetupReviewRoutes(api, appHandlers, authMW)
		SetupBookingRoutes(api, appHandlers, authMW)
	}

	SetupViewRoutes(ginRouter, appHandlers.ViewHandler, authMW)

	ginRouter.NoRoute(middleware.NotFound())
}
