package models

import "time"

type DeliveryQuote struct {
	DistanceKm     float64 `json:"distance_km"`
	DeliveryCharge float64 `json:"delivery_charge"`
	IsFreeDelivery bool    `json:"is_free_delivery"`
	DeliveryType   string  `json:"delivery_type"`
	Message        string  `json:"message"`
}

type DeliveryRequest struct {
	CustomerLat  float64 `json:"customer_lat"`
	CustomerLon  float64 `json:"customer_lon"`
	OrderAmount  float64 `json:"order_amount"`
	DeliveryType string  `json:"delivery_type"`
}

type PincodeDeliveryRequest struct {
	Pincode      string  `json:"pincode"`
	Address      string  `json:"address"`
	OrderAmount  float64 `json:"order_amount"`
	DeliveryType string  `json:"delivery_type"`
}

// PincodeDeliveryResponse echoes the resolved coordinates so clients can
// show where the quote was computed for, and flags approximate results
// when geocoding fell back to the city-center default.
type PincodeDeliveryResponse struct {
	DeliveryQuote
	ResolvedLat float64 `json:"resolved_lat"`
	ResolvedLon float64 `json:"resolved_lon"`
	Approximate bool    `json:"approximate"`
}

// QuoteEvent is published to Kafka on every freshly computed quote.
type QuoteEvent struct {
	DistanceKm     float64   `json:"distance_km" bson:"distance_km"`
	DeliveryCharge float64   `json:"delivery_charge" bson:"delivery_charge"`
	IsFreeDelivery bool      `json:"is_free_delivery" bson:"is_free_delivery"`
	DeliveryType   string    `json:"delivery_type" bson:"delivery_type"`
	OrderAmount    float64   `json:"order_amount" bson:"order_amount"`
	QuotedAt       time.Time `json:"quoted_at" bson:"quoted_at"`
}
