package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/config"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/database"
	kafkaConfig "github.com/MOHITVYASJI/Mithaas-Delights/lib/kafka"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/middlewares/cors"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/utils"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/delivery/router"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/delivery/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cacheTTL := time.Duration(viper.GetInt("QUOTE_CACHE_TTL_MIN")) * time.Minute

	closers := []interface{ Close() error }{}

	var cache service.QuoteCache
	redisClient, err := database.InitRedis()
	if err != nil {
		if !errors.Is(err, database.ErrRedisNotConfigured) {
			log.Printf("Redis unavailable, using in-memory quote cache: %v", err)
		}
		cache = service.NewMemoryQuoteCache(cacheTTL)
	} else {
		cache = service.NewRedisQuoteCache(redisClient, cacheTTL)
		closers = append(closers, redisClient)
	}

	geocoder := service.NewGeocoder()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := database.InitMongo(ctx)
	cancel()
	if err != nil {
		if !errors.Is(err, database.ErrMongoNotConfigured) {
			log.Printf("MongoDB unavailable, using built-in locality table: %v", err)
		}
	} else {
		defer mongoClient.Disconnect(context.Background())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := geocoder.LoadLocalities(ctx, mongoClient); err != nil {
			log.Printf("Failed to load localities, using built-in table: %v", err)
		}
		cancel()
	}

	quoteWriter := kafkaConfig.InitKafkaWriter(kafkaConfig.TopicDeliveryQuotes)
	closers = append(closers, quoteWriter)

	policy := service.NewPolicy(service.PricingConfigFromEnv())
	deliveryService := service.NewDeliveryService(policy, geocoder, cache, quoteWriter)

	r := gin.Default()
	r.Use(cors.CORSMiddleware())
	router.SetupRouter(r, deliveryService)

	server := &http.Server{
		Addr:    viper.GetString("DELIVERY_SERVICE_ADDR"),
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	utils.WaitForShutdown(append([]interface{ Close() error }{server}, closers...)...)
}
