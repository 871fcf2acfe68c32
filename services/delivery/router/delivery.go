package router

import (
	"net/http"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/middlewares/auth"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/delivery/interfaces"

	"github.com/gin-gonic/gin"
)

func SetupRouter(router *gin.Engine, service interfaces.DeliveryInterface) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	deliveryGroup := router.Group("/delivery")
	deliveryGroup.POST("/calculate", service.HandleCalculate)
	deliveryGroup.POST("/calculate-pincode", service.HandleCalculatePincode)
	deliveryGroup.GET("/policy", service.HandlePolicy)
	deliveryGroup.POST("/clear-cache", auth.AdminAuthMiddleware(), service.HandleClearCache)
}
