package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"
)

func (s *AnalyticsService) GetDeliveryStats(c *gin.Context) {
	if stats, found := s.cache.Get("delivery_stats"); found {
		c.JSON(http.StatusOK, stats)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var stats models.DeliveryStats

	err := retry(3, 100*time.Millisecond, func() error {
		return s.pool.QueryRow(ctx, `
			SELECT
				COUNT(*) AS total_quotes,
				COUNT(*) FILTER (WHERE is_free_delivery) AS free_delivery_quotes,
				COUNT(*) FILTER (WHERE delivery_type = 'pickup') AS pickup_quotes,
				COALESCE(AVG(distance_km) FILTER (WHERE delivery_type = 'delivery'), 0) AS avg_distance_km,
				COALESCE(SUM(delivery_charge), 0) AS total_charges
			FROM delivery_quotes
		`).Scan(
			&stats.TotalQuotes,
			&stats.FreeDeliveryQuotes,
			&stats.PickupQuotes,
			&stats.AvgDistanceKm,
			&stats.TotalCharges,
		)
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to fetch delivery stats: %v", err)})
		return
	}

	s.cache.Set("delivery_stats", stats, 5*time.Minute)
	c.JSON(http.StatusOK, stats)
}

func (s *AnalyticsService) GetZoneBreakdown(c *gin.Context) {
	if breakdown, found := s.cache.Get("zone_breakdown"); found {
		c.JSON(http.StatusOK, breakdown)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var breakdown []models.ZoneBreakdown

	err := retry(3, 100*time.Millisecond, func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT
				CASE
					WHEN delivery_type = 'pickup' THEN 'pickup'
					WHEN distance_km <= 10 THEN '0-10 km'
					WHEN distance_km <= 20 THEN '10-20 km'
					WHEN distance_km <= 30 THEN '20-30 km'
					ELSE 'above 30 km'
				END AS zone,
				COUNT(*) AS quote_count
			FROM delivery_quotes
			GROUP BY zone
			ORDER BY quote_count DESC
		`)
		if err != nil {
			return fmt.Errorf("failed to fetch zone breakdown: %v", err)
		}
		defer rows.Close()

		breakdown = breakdown[:0]
		for rows.Next() {
			var zone models.ZoneBreakdown
			if err := rows.Scan(&zone.Zone, &zone.QuoteCount); err != nil {
				return fmt.Errorf("failed to scan zone breakdown: %v", err)
			}
			breakdown = append(breakdown, zone)
		}

		return rows.Err()
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.cache.Set("zone_breakdown", breakdown, 5*time.Minute)
	c.JSON(http.StatusOK, breakdown)
}
