package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/MOHITVYASJI/Mithaas-Delights/lib/config"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/database"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/middlewares/cors"
	"github.com/MOHITVYASJI/Mithaas-Delights/lib/utils"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/analytics/router"
	"github.com/MOHITVYASJI/Mithaas-Delights/services/analytics/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.InitPostgresPool(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pool.Close()

	analyticsService := service.NewAnalyticsService(pool, service.NewCache())

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = analyticsService.EnsureSchema(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	go analyticsService.ConsumeQuoteEvents()

	r := gin.Default()
	r.Use(cors.CORSMiddleware())
	router.SetupRouter(r, analyticsService)

	server := &http.Server{
		Addr:    viper.GetString("ANALYTICS_SERVICE_ADDR"),
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	utils.WaitForShutdown(server, analyticsService)
}
