package routes

import (
	"fitprofile/internal/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoutes exposes the health check and Prometheus metrics.
func RegisterHealthRoutes(router *gin.Engine, healthController *controllers.HealthController) {
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
