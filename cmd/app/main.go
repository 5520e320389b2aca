package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anurakx/villadesk/config"
	"github.com/anurakx/villadesk/internal/auth"
	"github.com/anurakx/villadesk/internal/backend"
	"github.com/anurakx/villadesk/internal/bootstrap"
	"github.com/anurakx/villadesk/internal/cache"
	"github.com/anurakx/villadesk/internal/kafka"
	"github.com/anurakx/villadesk/internal/repository"
	"github.com/anurakx/villadesk/internal/service/bookings"
	"github.com/anurakx/villadesk/internal/service/dashboard"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.SnapshotTTLSeconds)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	inventory := bootstrap.InventoryFromConfig(cfg.Hotel)
	backendClient := backend.NewClient(cfg.Backend, inventory, logger)
	auditRepo := repository.NewAuditRepository(pool)

	dashboardService := dashboard.NewDashboardService(backendClient, redisCache, inventory, logger)
	bookingService := bookings.NewBookingService(
		backendClient,
		redisCache,
		logger,
		bookings.WithAudit(auditRepo),
		bookings.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
	)
	authService := auth.NewService(cfg.Auth)

	deps := bootstrap.Services{
		Dashboard: dashboardService,
		Bookings:  bookingService,
		Auth:      authService,
		Audit:     auditRepo,
		Inventory: inventory,
		Logger:    logger,
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
