package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/anurakx/villadesk/config"
	"github.com/anurakx/villadesk/internal/backend"
	"github.com/anurakx/villadesk/internal/bootstrap"
	"github.com/anurakx/villadesk/internal/cache"
	"github.com/anurakx/villadesk/internal/email"
	"github.com/anurakx/villadesk/internal/kafka"
	"github.com/anurakx/villadesk/internal/service/dashboard"
)

// The worker keeps the dashboard snapshot warm and delivers guest
// notifications for booking events.
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.SnapshotTTLSeconds)*time.Second)
	defer redisCache.Close()

	inventory := bootstrap.InventoryFromConfig(cfg.Hotel)
	backendClient := backend.NewClient(cfg.Backend, inventory, logger)
	dashboardService := dashboard.NewDashboardService(backendClient, redisCache, inventory, logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, logger)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			logger.Warn("consumer stopped", zap.Error(err))
		}
	}()

	refreshTicker := time.NewTicker(time.Duration(cfg.Worker.RefreshIntervalSeconds) * time.Second)
	defer refreshTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-refreshTicker.C:
			if err := dashboardService.Refresh(ctx); err != nil {
				logger.Warn("snapshot refresh failed", zap.Error(err))
				continue
			}
			logger.Debug("snapshot refreshed")
		case s := <-sig:
			logger.Info("shutting down", zap.String("signal", s.String()))
			return
		}
	}
}
