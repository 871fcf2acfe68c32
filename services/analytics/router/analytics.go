package router

import (
	"net/http"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/middlewares/auth"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/analytics/interfaces"

	"github.com/gin-gonic/gin"
)

func SetupRouter(router *gin.Engine, service interfaces.AnalyticsInterface) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	adminGroup := router.Group("/admin")
	adminGroup.Use(auth.AdminAuthMiddleware())
	adminGroup.GET("/delivery-stats", service.GetDeliveryStats)
	adminGroup.GET("/zone-breakdown", service.GetZoneBreakdown)
}
