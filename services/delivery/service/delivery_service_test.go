package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/token"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/delivery/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *DeliveryService {
	return &DeliveryService{
		policy:   NewPolicy(testPricingConfig()),
		geocoder: NewGeocoder(),
		cache:    NewMemoryQuoteCache(time.Hour),
	}
}

func newTestRouter(s *DeliveryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	router.SetupRouter(r, s)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCalculateFreeDelivery(t *testing.T) {
	r := newTestRouter(newTestService())

	w := postJSON(t, r, "/delivery/calculate", models.DeliveryRequest{
		CustomerLat:  22.7196,
		CustomerLon:  75.8577,
		OrderAmount:  2000,
		DeliveryType: "delivery",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var quote models.DeliveryQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.True(t, quote.IsFreeDelivery)
	assert.Zero(t, quote.DeliveryCharge)
	assert.Equal(t, models.ModeDelivery, quote.DeliveryType)
	assert.Greater(t, quote.DistanceKm, 0.0)
	assert.Less(t, quote.DistanceKm, 10.0)
}

func TestHandleCalculateFarAway(t *testing.T) {
	r := newTestRouter(newTestService())

	w := postJSON(t, r, "/delivery/calculate", models.DeliveryRequest{
		CustomerLat:  19.0760,
		CustomerLon:  72.8777,
		OrderAmount:  500,
		DeliveryType: "delivery",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var quote models.DeliveryQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 200.0, quote.DeliveryCharge)
	assert.False(t, quote.IsFreeDelivery)
	assert.Greater(t, quote.DistanceKm, 500.0)
}

func TestHandleCalculateMidBand(t *testing.T) {
	s := newTestService()

	// ~14 km north-east of the shop, below the free-order threshold.
	quote := s.CalculateWithCaching(context.Background(), 22.80, 75.95, 800, models.ModeDelivery)
	assert.Greater(t, quote.DistanceKm, 10.0)
	assert.Less(t, quote.DistanceKm, 20.0)
	assert.Equal(t, 100.0, quote.DeliveryCharge)
}

func TestHandleCalculateInvalidCoordinates(t *testing.T) {
	r := newTestRouter(newTestService())

	w := postJSON(t, r, "/delivery/calculate", models.DeliveryRequest{
		CustomerLat:  95.0,
		CustomerLon:  75.8577,
		OrderAmount:  2000,
		DeliveryType: "delivery",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid coordinates")
}

func TestHandleCalculatePickupSkipsValidation(t *testing.T) {
	r := newTestRouter(newTestService())

	// Pickup never touches coordinates, even invalid ones.
	w := postJSON(t, r, "/delivery/calculate", models.DeliveryRequest{
		CustomerLat:  95.0,
		CustomerLon:  200.0,
		OrderAmount:  100,
		DeliveryType: "PICKUP",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var quote models.DeliveryQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.True(t, quote.IsFreeDelivery)
	assert.Zero(t, quote.DeliveryCharge)
	assert.Zero(t, quote.DistanceKm)
	assert.Equal(t, models.ModePickup, quote.DeliveryType)
}

func TestHandleCalculatePincode(t *testing.T) {
	r := newTestRouter(newTestService())

	w := postJSON(t, r, "/delivery/calculate-pincode", models.PincodeDeliveryRequest{
		Pincode:      "452001",
		OrderAmount:  2000,
		DeliveryType: "delivery",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PincodeDeliveryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Approximate)
	assert.InDelta(t, 22.7196, resp.ResolvedLat, 1e-9)
	assert.True(t, resp.IsFreeDelivery)
}

func TestHandleCalculatePincodeUnknownIsApproximate(t *testing.T) {
	r := newTestRouter(newTestService())

	w := postJSON(t, r, "/delivery/calculate-pincode", models.PincodeDeliveryRequest{
		Pincode:      "999999",
		OrderAmount:  800,
		DeliveryType: "delivery",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PincodeDeliveryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Approximate)
	assert.Equal(t, fallbackLocation.Latitude, resp.ResolvedLat)
	// City-center default is inside the first band.
	assert.Equal(t, 50.0, resp.DeliveryCharge)
}

func TestHandlePolicy(t *testing.T) {
	r := newTestRouter(newTestService())

	req := httptest.NewRequest(http.MethodGet, "/delivery/policy", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Contains(t, info, "shop_location")
	assert.Contains(t, info, "free_delivery")
	assert.Contains(t, info, "delivery_charges")
}

func TestCalculateWithCachingIdempotent(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first := s.CalculateWithCaching(ctx, 22.80, 75.95, 800, models.ModeDelivery)
	assert.Equal(t, 100.0, first.DeliveryCharge)

	// Mutating a pricing constant proves the second call was served from
	// the cache, not recomputed.
	s.policy.Config.Charge10To20 = 999
	second := s.CalculateWithCaching(ctx, 22.80, 75.95, 800, models.ModeDelivery)
	assert.Equal(t, first, second)
}

func TestClearCacheForcesRecompute(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first := s.CalculateWithCaching(ctx, 22.80, 75.95, 800, models.ModeDelivery)
	assert.Equal(t, 100.0, first.DeliveryCharge)

	s.policy.Config.Charge10To20 = 120
	require.NoError(t, s.cache.Clear(ctx))

	recomputed := s.CalculateWithCaching(ctx, 22.80, 75.95, 800, models.ModeDelivery)
	assert.Equal(t, 120.0, recomputed.DeliveryCharge)
}

func TestClearCacheEndpointRequiresAdmin(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	r := newTestRouter(newTestService())

	// No token.
	w := postJSON(t, r, "/delivery/clear-cache", gin.H{}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token, but not an admin.
	userToken, err := token.GenerateToken("7", "customer", "user")
	require.NoError(t, err)
	w = postJSON(t, r, "/delivery/clear-cache", gin.H{}, map[string]string{
		"Authorization": "Bearer " + userToken,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin token clears the cache.
	adminToken, err := token.GenerateToken("1", "owner", token.RoleAdmin)
	require.NoError(t, err)
	w = postJSON(t, r, "/delivery/clear-cache", gin.H{}, map[string]string{
		"Authorization": "Bearer " + adminToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delivery cache cleared successfully")
}

func TestNormalizeMode(t *testing.T) {
	for input, want := range map[string]string{
		"pickup":   models.ModePickup,
		"PICKUP":   models.ModePickup,
		"Pickup":   models.ModePickup,
		"delivery": models.ModeDelivery,
		"":         models.ModeDelivery,
		"anything": models.ModeDelivery,
	} {
		assert.Equal(t, want, normalizeMode(input), fmt.Sprintf("input %q", input))
	}
}
