package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/utils"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/delivery/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
)

type DeliveryService struct {
	policy      *Policy
	geocoder    *Geocoder
	cache       QuoteCache
	quoteWriter *kafka.Writer
}

func NewDeliveryService(policy *Policy, geocoder *Geocoder, cache QuoteCache, quoteWriter *kafka.Writer) interfaces.DeliveryInterface {
	return &DeliveryService{
		policy:      policy,
		geocoder:    geocoder,
		cache:       cache,
		quoteWriter: quoteWriter,
	}
}

func (s *DeliveryService) HandleCalculate(c *gin.Context) {
	var req models.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := normalizeMode(req.DeliveryType)
	if mode != models.ModePickup && !ValidateCoordinates(req.CustomerLat, req.CustomerLon) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	quote := s.CalculateWithCaching(c.Request.Context(), req.CustomerLat, req.CustomerLon, req.OrderAmount, mode)
	c.JSON(http.StatusOK, quote)
}

func (s *DeliveryService) HandleCalculatePincode(c *gin.Context) {
	var req models.PincodeDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := normalizeMode(req.DeliveryType)
	if mode == models.ModePickup {
		c.JSON(http.StatusOK, models.PincodeDeliveryResponse{
			DeliveryQuote: s.policy.Quote(0, req.OrderAmount, mode),
		})
		return
	}

	point, approximate := s.geocoder.Resolve(c.Request.Context(), req.Pincode, req.Address)
	quote := s.CalculateWithCaching(c.Request.Context(), point.Latitude, point.Longitude, req.OrderAmount, mode)

	c.JSON(http.StatusOK, models.PincodeDeliveryResponse{
		DeliveryQuote: quote,
		ResolvedLat:   point.Latitude,
		ResolvedLon:   point.Longitude,
		Approximate:   approximate,
	})
}

// CalculateWithCaching computes a quote, memoized on the rounded inputs.
// Pickup quotes are constant and bypass the cache entirely.
func (s *DeliveryService) CalculateWithCaching(ctx context.Context, lat, lon, orderAmount float64, deliveryType string) models.DeliveryQuote {
	if deliveryType == models.ModePickup {
		return s.policy.Quote(0, orderAmount, deliveryType)
	}

	key := quoteKey(lat, lon, orderAmount, deliveryType)
	if quote, found := s.cache.Get(ctx, key); found {
		return quote
	}

	customer := models.GeoPoint{Latitude: lat, Longitude: lon}
	distance := utils.Round(Haversine(s.policy.Config.ShopLocation, customer), 2)
	quote := s.policy.Quote(distance, orderAmount, deliveryType)

	s.cache.Set(ctx, key, quote)
	go s.publishQuoteEvent(quote, orderAmount)

	return quote
}

func (s *DeliveryService) HandlePolicy(c *gin.Context) {
	c.JSON(http.StatusOK, s.policy.Info())
}

func (s *DeliveryService) HandleClearCache(c *gin.Context) {
	if err := s.cache.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to clear cache: %v", err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery cache cleared successfully"})
}

func (s *DeliveryService) publishQuoteEvent(quote models.DeliveryQuote, orderAmount float64) {
	if s.quoteWriter == nil {
		return
	}

	event := models.QuoteEvent{
		DistanceKm:     quote.DistanceKm,
		DeliveryCharge: quote.DeliveryCharge,
		IsFreeDelivery: quote.IsFreeDelivery,
		DeliveryType:   quote.DeliveryType,
		OrderAmount:    orderAmount,
		QuotedAt:       time.Now().UTC(),
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling quote event: %v", err)
		return
	}

	if err := s.quoteWriter.WriteMessages(context.Background(), kafka.Message{Value: eventJSON}); err != nil {
		log.Printf("Error publishing quote event: %v", err)
	}
}

// quoteKey rounds coordinates to 4 decimal places (roughly 11 m) so
// near-duplicate requests collapse to one cache entry.
func quoteKey(lat, lon, orderAmount float64, deliveryType string) string {
	return fmt.Sprintf("%.4f:%.4f:%.2f:%s", lat, lon, orderAmount, deliveryType)
}

func normalizeMode(deliveryType string) string {
	if strings.ToLower(deliveryType) == models.ModePickup {
		return models.ModePickup
	}
	return models.ModeDelivery
}
