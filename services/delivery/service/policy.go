package service

import (
	"fmt"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/spf13/viper"
)

// PricingConfig holds the delivery pricing constants. They are fixed at
// startup; changing them requires a cache clear so stale quotes are not
// served.
type PricingConfig struct {
	ShopLocation      models.GeoPoint
	FreeMinAmount     float64
	FreeMaxDistanceKm float64
	Charge0To10       float64
	Charge10To20      float64
	Charge20To30      float64
	ChargeAbove30     float64
}

func PricingConfigFromEnv() PricingConfig {
	return PricingConfig{
		ShopLocation: models.GeoPoint{
			Latitude:  viper.GetFloat64("SHOP_LAT"),
			Longitude: viper.GetFloat64("SHOP_LON"),
			Name:      "Mithaas Delights, Indore",
		},
		FreeMinAmount:     viper.GetFloat64("FREE_DELIVERY_MIN_AMOUNT"),
		FreeMaxDistanceKm: viper.GetFloat64("FREE_DELIVERY_MAX_DISTANCE_KM"),
		Charge0To10:       viper.GetFloat64("DELIVERY_CHARGE_0_10KM"),
		Charge10To20:      viper.GetFloat64("DELIVERY_CHARGE_10_20KM"),
		Charge20To30:      viper.GetFloat64("DELIVERY_CHARGE_20_30KM"),
		ChargeAbove30:     viper.GetFloat64("DELIVERY_CHARGE_ABOVE_30KM"),
	}
}

type Policy struct {
	Config PricingConfig
}

func NewPolicy(cfg PricingConfig) *Policy {
	return &Policy{Config: cfg}
}

// Quote maps (distance, order amount, delivery type) to a charge.
// Precedence: pickup short-circuits everything; then the combined
// free-delivery rule (minimum amount AND maximum distance); then the
// distance bands. The bands use closed upper bounds, so pricing is
// non-decreasing with distance for a fixed order amount.
func (p *Policy) Quote(distanceKm, orderAmount float64, deliveryType string) models.DeliveryQuote {
	if deliveryType == models.ModePickup {
		return models.DeliveryQuote{
			DistanceKm:     0,
			DeliveryCharge: 0,
			IsFreeDelivery: true,
			DeliveryType:   models.ModePickup,
			Message:        "Pickup from store - No delivery charge",
		}
	}

	cfg := p.Config
	if orderAmount >= cfg.FreeMinAmount && distanceKm <= cfg.FreeMaxDistanceKm {
		return models.DeliveryQuote{
			DistanceKm:     distanceKm,
			DeliveryCharge: 0,
			IsFreeDelivery: true,
			DeliveryType:   models.ModeDelivery,
			Message:        fmt.Sprintf("Free delivery (Order ≥ ₹%.0f & Distance ≤ %.0fkm)", cfg.FreeMinAmount, cfg.FreeMaxDistanceKm),
		}
	}

	var charge float64
	switch {
	case distanceKm <= 10:
		charge = cfg.Charge0To10
	case distanceKm <= 20:
		charge = cfg.Charge10To20
	case distanceKm <= 30:
		charge = cfg.Charge20To30
	default:
		charge = cfg.ChargeAbove30
	}

	isFree := charge == 0
	message := fmt.Sprintf("Delivery to %vkm - ₹%v", distanceKm, charge)
	if isFree {
		message = "Free delivery"
	}

	return models.DeliveryQuote{
		DistanceKm:     distanceKm,
		DeliveryCharge: charge,
		IsFreeDelivery: isFree,
		DeliveryType:   models.ModeDelivery,
		Message:        message,
	}
}

// Info describes the static pricing policy for client-side display.
func (p *Policy) Info() map[string]interface{} {
	cfg := p.Config
	return map[string]interface{}{
		"shop_location": cfg.ShopLocation,
		"free_delivery": map[string]interface{}{
			"min_order_amount": cfg.FreeMinAmount,
			"max_distance_km":  cfg.FreeMaxDistanceKm,
		},
		"delivery_charges": []map[string]interface{}{
			{"range": "0-10 km", "charge": cfg.Charge0To10},
			{"range": "10-20 km", "charge": cfg.Charge10To20},
			{"range": "20-30 km", "charge": cfg.Charge20To30},
			{"range": "above 30 km", "charge": cfg.ChargeAbove30},
		},
		"pickup": map[string]interface{}{
			"charge":  0,
			"message": "Pickup from store - No delivery charge",
		},
	}
}
