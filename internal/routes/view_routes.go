package routes

import (
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupViewRoutes(r *gin.Engine, views *handlers.ViewHandler, authMW *middleware.AuthMiddleware) {
	public := r.Group("/")
	public.Use(authMW.IsLoggedIn())
	{
		public.GET("/", views.Overview)
		public.GET("/tour/:slug", views.Tour)
		public.GET("/login", views.Login)
	}

	r.GET("/me", authMW.Protect(), views.Account)
}
