package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Indian pincodes share their first three digits within a locality, which
// is enough precision for delivery-band pricing.
const pincodePrefixLen = 3

// defaultLocalities seeds the prefix table for the known service areas.
var defaultLocalities = map[string]models.GeoPoint{
	"452": {Latitude: 22.7196, Longitude: 75.8577, Name: "Indore"},
	"453": {Latitude: 22.7500, Longitude: 75.8500, Name: "Indore outskirts"},
	"400": {Latitude: 19.0760, Longitude: 72.8777, Name: "Mumbai"},
	"110": {Latitude: 28.7041, Longitude: 77.1025, Name: "Delhi"},
	"560": {Latitude: 12.9716, Longitude: 77.5946, Name: "Bangalore"},
	"600": {Latitude: 13.0827, Longitude: 80.2707, Name: "Chennai"},
}

// fallbackLocation is the Indore city-center default used when nothing
// resolves. Availability over precision: the geocoder always returns a
// coordinate so a quote can be produced.
var fallbackLocation = models.GeoPoint{Latitude: 22.7196, Longitude: 75.8577, Name: "Indore city center"}

type Geocoder struct {
	mu         sync.RWMutex
	localities map[string]models.GeoPoint
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewGeocoder builds a geocoder over the static locality table. When
// GEOCODER_URL is set, free-text addresses are additionally resolved
// against a Nominatim-style endpoint under a hard timeout.
func NewGeocoder() *Geocoder {
	localities := make(map[string]models.GeoPoint, len(defaultLocalities))
	for prefix, point := range defaultLocalities {
		localities[prefix] = point
	}
	timeout := time.Duration(viper.GetInt("GEOCODER_TIMEOUT_SEC")) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Geocoder{
		localities: localities,
		httpClient: &http.Client{},
		baseURL:    viper.GetString("GEOCODER_URL"),
		timeout:    timeout,
	}
}

type localityDoc struct {
	Prefix    string  `bson:"prefix"`
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
	Name      string  `bson:"name"`
}

// LoadLocalities replaces the prefix table with the localities collection.
// An empty or unreachable collection leaves the static table in place.
func (g *Geocoder) LoadLocalities(ctx context.Context, client *mongo.Client) error {
	cursor, err := client.Database("mithaas").Collection("localities").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("error loading localities: %w", err)
	}
	defer cursor.Close(ctx)

	loaded := make(map[string]models.GeoPoint)
	for cursor.Next(ctx) {
		var doc localityDoc
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("error decoding locality: %w", err)
		}
		if len(doc.Prefix) != pincodePrefixLen || !ValidateCoordinates(doc.Latitude, doc.Longitude) {
			log.Printf("Skipping invalid locality %q", doc.Prefix)
			continue
		}
		loaded[doc.Prefix] = models.GeoPoint{
			Latitude:  doc.Latitude,
			Longitude: doc.Longitude,
			Name:      doc.Name,
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("error iterating localities: %w", err)
	}
	if len(loaded) == 0 {
		return nil
	}

	g.mu.Lock()
	g.localities = loaded
	g.mu.Unlock()
	log.Printf("Loaded %d localities", len(loaded))
	return nil
}

// Resolve maps a pincode or free-text address to approximate coordinates.
// It never fails: unresolvable input yields the city-center default with
// approximate=true so callers can flag the quote.
func (g *Geocoder) Resolve(ctx context.Context, pincode, address string) (models.GeoPoint, bool) {
	if len(pincode) >= pincodePrefixLen {
		g.mu.RLock()
		point, found := g.localities[pincode[:pincodePrefixLen]]
		g.mu.RUnlock()
		if found {
			return point, false
		}
	}

	if address != "" && g.baseURL != "" {
		point, err := g.geocodeRemote(ctx, address)
		if err == nil {
			return point, false
		}
		log.Printf("Error geocoding address %q: %v", address, err)
	}

	return fallbackLocation, true
}

func (g *Geocoder) geocodeRemote(ctx context.Context, address string) (models.GeoPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.GeoPoint{}, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.GeoPoint{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.GeoPoint{}, err
	}
	if len(results) == 0 {
		return models.GeoPoint{}, fmt.Errorf("no results for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.GeoPoint{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.GeoPoint{}, err
	}
	if !ValidateCoordinates(lat, lon) {
		return models.GeoPoint{}, fmt.Errorf("geocoder returned invalid coordinates %f,%f", lat, lon)
	}

	return models.GeoPoint{Latitude: lat, Longitude: lon, Name: results[0].DisplayName}, nil
}
