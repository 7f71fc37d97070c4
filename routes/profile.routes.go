package routes

import (
	"fitprofile/internal/controllers"
	"fitprofile/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProfileRoutes(router *gin.Engine, jwtSecret string, profileController *controllers.ProfileController) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	{
		profileRoutes.GET("", profileController.GetProfile)
		profileRoutes.POST("/refresh", profileController.RefreshProfile)
	}
}
