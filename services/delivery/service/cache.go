package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"

	"github.com/redis/go-redis/v9"
)

// QuoteCache memoizes delivery quotes keyed by rounded coordinates, order
// amount and delivery type. Implementations must be safe for concurrent
// use; cache failures are treated as misses, never as request failures.
type QuoteCache interface {
	Get(ctx context.Context, key string) (models.DeliveryQuote, bool)
	Set(ctx context.Context, key string, quote models.DeliveryQuote)
	Clear(ctx context.Context) error
}

type quoteEntry struct {
	quote      models.DeliveryQuote
	expiration time.Time
}

// MemoryQuoteCache is the single-instance in-process store.
type MemoryQuoteCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]quoteEntry
}

func NewMemoryQuoteCache(ttl time.Duration) *MemoryQuoteCache {
	return &MemoryQuoteCache{
		ttl:   ttl,
		items: make(map[string]quoteEntry),
	}
}

func (c *MemoryQuoteCache) Get(_ context.Context, key string) (models.DeliveryQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, found := c.items[key]
	if !found || time.Now().After(entry.expiration) {
		return models.DeliveryQuote{}, false
	}
	return entry.quote, true
}

func (c *MemoryQuoteCache) Set(_ context.Context, key string, quote models.DeliveryQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = quoteEntry{
		quote:      quote,
		expiration: time.Now().Add(c.ttl),
	}
}

func (c *MemoryQuoteCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]quoteEntry)
	return nil
}

const redisQuotePrefix = "delivery_quote:"

// RedisQuoteCache shares quotes across service instances.
type RedisQuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuoteCache(client *redis.Client, ttl time.Duration) *RedisQuoteCache {
	return &RedisQuoteCache{client: client, ttl: ttl}
}

func (c *RedisQuoteCache) Get(ctx context.Context, key string) (models.DeliveryQuote, bool) {
	data, err := c.client.Get(ctx, redisQuotePrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("quote cache read failed, computing directly: %v", err)
		}
		return models.DeliveryQuote{}, false
	}

	var quote models.DeliveryQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		log.Printf("quote cache entry corrupt, computing directly: %v", err)
		return models.DeliveryQuote{}, false
	}
	return quote, true
}

func (c *RedisQuoteCache) Set(ctx context.Context, key string, quote models.DeliveryQuote) {
	data, err := json.Marshal(quote)
	if err != nil {
		log.Printf("Error marshaling quote for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, redisQuotePrefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("quote cache write failed: %v", err)
	}
}

func (c *RedisQuoteCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisQuotePrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
