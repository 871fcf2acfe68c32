package interfaces

import (
	"context"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/gin-gonic/gin"
)

type AnalyticsInterface interface {
	EnsureSchema(ctx context.Context) error
	GetDeliveryStats(c *gin.Context)
	GetZoneBreakdown(c *gin.Context)
	ConsumeQuoteEvents()
	RecordQuote(ctx context.Context, event models.QuoteEvent) error
	Close() error
}
