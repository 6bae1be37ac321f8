// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oceanbridge/importflow/internal/api"
	"github.com/oceanbridge/importflow/internal/cache"
	"github.com/oceanbridge/importflow/internal/config"
	"github.com/oceanbridge/importflow/internal/events"
	"github.com/oceanbridge/importflow/internal/repository/postgres"
	"github.com/oceanbridge/importflow/internal/service"
	"github.com/oceanbridge/importflow/internal/storage"
	"github.com/oceanbridge/importflow/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	orderRepo := postgres.NewOrderRepository(db)
	refRepo := postgres.NewReferenceRepository(db)

	// Reference cache falls back to a noop when Redis is disabled
	refCache, err := cache.NewReferenceCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Reference cache unavailable, running without cache")
		refCache = cache.NewNoopReferenceCache()
	}

	// Status events are best-effort: without Kafka the gate still runs
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.BrokerAddr, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Log.Info().Str("broker", cfg.Kafka.BrokerAddr).Str("topic", cfg.Kafka.Topic).Msg("Kafka publisher enabled")
	}

	var documents storage.DocumentStore
	if cfg.Storage.Enabled {
		minioStore, err := storage.NewMinioStore(context.Background(), cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to object storage")
		}
		documents = minioStore
		logger.Log.Info().Str("endpoint", cfg.Storage.Endpoint).Str("bucket", cfg.Storage.Bucket).Msg("Document storage enabled")
	}

	// Initialize services
	services := &api.Services{
		OrderService:     service.NewOrderService(orderRepo, refRepo),
		ShipmentService:  service.NewShipmentService(orderRepo, publisher),
		ReferenceService: service.NewReferenceService(refRepo, refCache),
		Documents:        documents,
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
