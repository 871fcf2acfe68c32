package service

import (
	"math"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"
)

// Radius of earth in kilometers
const earthRadiusKm = 6371

// Haversine returns the great circle distance in kilometers between two
// points on earth. Inputs must already be validated; the formula itself
// has no domain errors for in-range coordinates.
func Haversine(from, to models.GeoPoint) float64 {
	lat1 := toRadians(from.Latitude)
	lon1 := toRadians(from.Longitude)
	lat2 := toRadians(to.Latitude)
	lon2 := toRadians(to.Longitude)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// ValidateCoordinates reports whether lat/lon are finite and within the
// valid ranges. Requests failing this check are rejected before any
// distance computation.
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
