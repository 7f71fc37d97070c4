package routes

import (
	"fitprofile/internal/controllers"
	"fitprofile/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSampleRoutes(router *gin.Engine, jwtSecret string, sampleController *controllers.SampleController) {
	auth := middleware.AuthMiddleware(jwtSecret)

	sampleRoutes := router.Group("/samples")
	sampleRoutes.Use(auth)
	{
		sampleRoutes.POST("", sampleController.RecordSample)
		sampleRoutes.GET("/:type", sampleController.ListSamples)
	}

	router.PUT("/characteristics", auth, sampleController.SetDateOfBirth)
}
