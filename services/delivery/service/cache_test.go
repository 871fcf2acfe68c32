package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/stretchr/testify/assert"
)

func TestMemoryQuoteCacheRoundTrip(t *testing.T) {
	cache := NewMemoryQuoteCache(time.Hour)
	ctx := context.Background()

	quote := models.DeliveryQuote{
		DistanceKm:     3.36,
		DeliveryCharge: 0,
		IsFreeDelivery: true,
		DeliveryType:   models.ModeDelivery,
		Message:        "Free delivery",
	}

	_, found := cache.Get(ctx, "k1")
	assert.False(t, found)

	cache.Set(ctx, "k1", quote)
	got, found := cache.Get(ctx, "k1")
	assert.True(t, found)
	assert.Equal(t, quote, got)

	_, found = cache.Get(ctx, "k2")
	assert.False(t, found)
}

func TestMemoryQuoteCacheExpiry(t *testing.T) {
	cache := NewMemoryQuoteCache(20 * time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "k1", models.DeliveryQuote{DeliveryCharge: 50})
	_, found := cache.Get(ctx, "k1")
	assert.True(t, found)

	time.Sleep(40 * time.Millisecond)
	_, found = cache.Get(ctx, "k1")
	assert.False(t, found)
}

func TestMemoryQuoteCacheClear(t *testing.T) {
	cache := NewMemoryQuoteCache(time.Hour)
	ctx := context.Background()

	cache.Set(ctx, "k1", models.DeliveryQuote{DeliveryCharge: 50})
	cache.Set(ctx, "k2", models.DeliveryQuote{DeliveryCharge: 100})

	assert.NoError(t, cache.Clear(ctx))

	_, found := cache.Get(ctx, "k1")
	assert.False(t, found)
	_, found = cache.Get(ctx, "k2")
	assert.False(t, found)
}

func TestMemoryQuoteCacheConcurrentAccess(t *testing.T) {
	cache := NewMemoryQuoteCache(time.Hour)
	ctx := context.Background()
	quote := models.DeliveryQuote{DeliveryCharge: 100, DeliveryType: models.ModeDelivery}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.Set(ctx, "shared", quote)
		}()
		go func() {
			defer wg.Done()
			if got, found := cache.Get(ctx, "shared"); found {
				assert.Equal(t, quote, got)
			}
		}()
	}
	wg.Wait()

	got, found := cache.Get(ctx, "shared")
	assert.True(t, found)
	assert.Equal(t, quote, got)
}

func TestQuoteKeyCollapsesNearDuplicates(t *testing.T) {
	base := quoteKey(22.71961, 75.85771, 800, models.ModeDelivery)

	// Differences past the 4th decimal place (~11 m) share an entry.
	assert.Equal(t, base, quoteKey(22.719608, 75.857714, 800, models.ModeDelivery))

	// Anything coarser, or a different amount or mode, does not.
	assert.NotEqual(t, base, quoteKey(22.7206, 75.85771, 800, models.ModeDelivery))
	assert.NotEqual(t, base, quoteKey(22.71961, 75.85771, 900, models.ModeDelivery))
	assert.NotEqual(t, base, quoteKey(22.71961, 75.85771, 800, models.ModePickup))
}
