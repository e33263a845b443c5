package routes

import (
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(api *gin.RouterGroup, h *handlers.AppHandlers, authMW *middleware.AuthMiddleware) {
	users := api.Group("/users")
	{
		users.POST("/signup", h.AuthHandler.Signup)
		users.POST("/login", h.AuthHandler.Login)
		users.GET("/logout", h.AuthHandler.Logout)
		users.POST("/logout", h.AuthHandler.Logout)
		users.POST("/forgotPassword", h.AuthHandler.ForgotPassword)
		users.PATCH("/resetPassword/:token", h.AuthHandler.ResetPassword)
	}

	// everything below needs a logged-in user
	me := users.Group("")
	me.Use(authMW.Protect())
	{
		me.PATCH("/updateMyPassword", h.AuthHandler.UpdateMyPassword)
		me.GET("/me", h.UserHandler.GetMe)
		me.PATCH("/updateMe", h.UserHandler.UpdateMe)
		me.DELETE("/deleteMe", h.UserHandler.DeleteMe)
	}

	admin := users.Group("")
	admin.Use(authMW.Protect(), middleware.RestrictTo(models.UserRoleAdmin))
	{
		admin.GET("", h.UserHandler.ListUsers)
		admin.GET("/:id", h.UserHandler.GetUser)
	}
}
