package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/segmentio/kafka-go"

	kafkaConfig "github.com/MOHITVYASJI/Mithaas-Delights/lib/kafka"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/models"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/analytics/interfaces"
)

// Cache holds rendered admin responses for a short window so repeated
// dashboard refreshes do not hammer Postgres.
type Cache struct {
	sync.RWMutex
	items map[string]cacheItem
}

type cacheItem struct {
	value      interface{}
	expiration time.Time
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]cacheItem),
	}
}

func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.items[key] = cacheItem{
		value:      value,
		expiration: time.Now().Add(duration),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.RLock()
	defer c.RUnlock()
	item, found := c.items[key]
	if !found || time.Now().After(item.expiration) {
		return nil, false
	}
	return item.value, true
}

type AnalyticsService struct {
	pool        *pgxpool.Pool
	quoteReader *kafka.Reader
	cache       *Cache
	shutdown    chan struct{}
	wg          sync.WaitGroup
}

func NewAnalyticsService(pool *pgxpool.Pool, cache *Cache) interfaces.AnalyticsInterface {
	return &AnalyticsService{
		pool:        pool,
		quoteReader: kafkaConfig.InitKafkaReader(kafkaConfig.TopicDeliveryQuotes, "analytics-service"),
		cache:       cache,
		shutdown:    make(chan struct{}),
	}
}

// EnsureSchema creates the quote table when it does not exist yet.
func (s *AnalyticsService) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS delivery_quotes (
			id BIGSERIAL PRIMARY KEY,
			distance_km DOUBLE PRECISION NOT NULL,
			delivery_charge DOUBLE PRECISION NOT NULL,
			is_free_delivery BOOLEAN NOT NULL,
			delivery_type TEXT NOT NULL,
			order_amount DOUBLE PRECISION NOT NULL,
			quoted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create delivery_quotes table: %v", err)
	}
	return nil
}

// ConsumeQuoteEvents drains the delivery_quotes topic into Postgres.
func (s *AnalyticsService) ConsumeQuoteEvents() {
	s.wg.Add(1)
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			log.Println("Stopping quote event consumer")
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			msg, err := s.quoteReader.FetchMessage(ctx)
			cancel()

			if err != nil {
				if err == context.DeadlineExceeded {
					time.Sleep(1 * time.Second)
				} else {
					log.Printf("Error fetching quote event: %v", err)
				}
				continue
			}

			var event models.QuoteEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("Error unmarshaling quote event: %v", err)
			} else if err := s.RecordQuote(context.Background(), event); err != nil {
				log.Printf("Error recording quote: %v", err)
			}

			if err := s.quoteReader.CommitMessages(context.Background(), msg); err != nil {
				log.Printf("Error committing message: %v", err)
			}
		}
	}
}

func (s *AnalyticsService) RecordQuote(ctx context.Context, event models.QuoteEvent) error {
	quotedAt := event.QuotedAt
	if quotedAt.IsZero() {
		quotedAt = time.Now().UTC()
	}

	return retry(3, 100*time.Millisecond, func() error {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO delivery_quotes (distance_km, delivery_charge, is_free_delivery, delivery_type, order_amount, quoted_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			event.DistanceKm, event.DeliveryCharge, event.IsFreeDelivery, event.DeliveryType, event.OrderAmount, quotedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quote: %v", err)
		}
		return nil
	})
}

func (s *AnalyticsService) Close() error {
	close(s.shutdown)
	s.wg.Wait()
	return s.quoteReader.Close()
}

func retry(attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; ; i++ {
		err = f()
		if err == nil {
			return nil
		}
		if i >= attempts-1 {
			break
		}
		time.Sleep(sleep)
		sleep *= 2 // exponential back-off
	}
	return fmt.Errorf("after %d attempts, last error: %s", attempts, err)
}
