package routes

import (
	"fitprofile/internal/controllers"
	"fitprofile/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthorizationRoutes(router *gin.Engine, jwtSecret string, authorizationController *controllers.AuthorizationController) {
	authRoutes := router.Group("/authorizations")
	authRoutes.Use(middleware.AuthMiddleware(jwtSecret))
	{
		authRoutes.GET("", authorizationController.ListAuthorizations)
		authRoutes.POST("", authorizationController.SetAuthorization)
	}
}
