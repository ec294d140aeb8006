// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/giftflare-backend/internal/config"
	"github.com/your-org/giftflare-backend/internal/domain/checkout"
	"github.com/your-org/giftflare-backend/internal/domain/order"
	"github.com/your-org/giftflare-backend/internal/domain/pricing"
	"github.com/your-org/giftflare-backend/internal/domain/product"
	"github.com/your-org/giftflare-backend/internal/domain/session"
	"github.com/your-org/giftflare-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/giftflare-backend/internal/infrastructure/database/redis"
	"github.com/your-org/giftflare-backend/internal/infrastructure/messaging"
	"github.com/your-org/giftflare-backend/internal/infrastructure/storage"
	"github.com/your-org/giftflare-backend/internal/interfaces/http"
	"github.com/your-org/giftflare-backend/internal/pkg/auth"
	"github.com/your-org/giftflare-backend/internal/pkg/logger"
)

const sessionPruneInterval = time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logs := logger.New(cfg)
	logs.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to database
	db, err := postgres.NewConnection(cfg, logs)
	if err != nil {
		logs.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, logs)
	if err != nil {
		logs.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), logs)

	if err := migration.RunAutoMigrations(); err != nil {
		logs.WithError(err).Fatal("Database migration failed")
	}

	if err := migration.CreateIndexes(); err != nil {
		logs.WithError(err).Warn("Index creation failed")
	}

	// Seed the sample catalog in development
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			logs.WithError(err).Warn("Data seeding failed")
		}
	}

	// Order events go to kafka when brokers are configured
	var publisher interface {
		order.Publisher
		Close() error
	}
	if cfg.KafkaEnabled() {
		publisher = messaging.NewKafkaPublisher(cfg.Kafka.OrderTopic, cfg.Kafka.Brokers...)
		logs.WithField("topic", cfg.Kafka.OrderTopic).Info("📨 Publishing order events to Kafka")
	} else {
		publisher = messaging.NewLogPublisher(logs)
	}
	defer publisher.Close()

	// Domain services
	products := product.NewService(product.NewGormRepository(db.GetDB()), cfg, logs)
	policy := pricing.NewPolicy(pricing.ConfigFrom(cfg))
	orders := order.NewService(order.NewGormRepository(db.GetDB()), publisher, logs)
	checkoutService := checkout.NewService(policy, orders, logs)

	cartStorage := storage.NewRedisStore(redisClient.GetClient(), cfg.Cart.TTL)
	sessions := session.NewRegistry(cartStorage, session.OptionsFrom(cfg), logs)

	pruneCtx, stopPruner := context.WithCancel(context.Background())
	defer stopPruner()
	go sessions.RunPruner(pruneCtx, sessionPruneInterval)

	logs.Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, http.Dependencies{
		Logger:   logs,
		Products: products,
		Sessions: sessions,
		Tokens:   auth.NewSessionManager(cfg),
		Checkout: checkoutService,
		Policy:   policy,
		Redis:    redisClient.GetClient(),
		HealthChecks: map[string]http.HealthCheck{
			"database": db.Health,
			"redis":    redisClient.Health,
		},
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logs.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logs.Info("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logs.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logs.Info("✅ Server shutdown completed")
}
