package models

type DeliveryStats struct {
	TotalQuotes        int     `json:"totalQuotes"`
	FreeDeliveryQuotes int     `json:"freeDeliveryQuotes"`
	PickupQuotes       int     `json:"pickupQuotes"`
	AvgDistanceKm      float64 `json:"avgDistanceKm"`
	TotalCharges       float64 `json:"totalCharges"`
}

type ZoneBreakdown struct {
	Zone       string `json:"zone"`
	QuoteCount int    `json:"quoteCount"`
}
