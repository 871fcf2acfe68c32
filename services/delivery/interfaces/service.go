package interfaces

import (
	"context"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/gin-gonic/gin"
)

type DeliveryInterface interface {
	HandleCalculate(c *gin.Context)
	HandleCalculatePincode(c *gin.Context)
	HandlePolicy(c *gin.Context)
	HandleClearCache(c *gin.Context)
	CalculateWithCaching(ctx context.Context, lat, lon, orderAmount float64, deliveryType string) models.DeliveryQuote
}
