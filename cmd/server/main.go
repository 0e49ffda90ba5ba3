package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"agentcrm_site/internal/config"
	"agentcrm_site/internal/dashboard"
	"agentcrm_site/internal/handlers"
	"agentcrm_site/internal/services"
	"agentcrm_site/internal/session"
	"agentcrm_site/web"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	deliverer, err := services.NewDeliverer(cfg)
	if err != nil {
		logger.Fatal("Failed to build deliverer", zap.Error(err))
	}
	logger.Info("Inquiry delivery configured", zap.String("mode", cfg.DeliveryMode))

	// Shared rate limiting across instances needs redis
	var rateStore echomw.RateLimiterStore
	if cfg.RedisURL != "" {
		cache, err := services.NewRedisCache(cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer cache.Close()
		rateStore = services.NewRedisRateLimitStore(cache, cfg.LeadRateLimit, time.Minute)
	} else {
		logger.Info("REDIS_URL not set, using in-process rate limiter")
	}

	store := session.NewStore(session.Options{
		Deliverer:   &services.LoggingDeliverer{Next: deliverer, Logger: logger},
		Recipients:  cfg.Recipients(),
		Registry:    dashboard.DefaultRegistry(cfg.Theme),
		IdleTimeout: cfg.SessionIdleTimeout,
		MaxVisitors: cfg.SessionMaxVisitors,
		Logger:      logger,
	})

	blog, err := web.LoadBlog()
	if err != nil {
		logger.Fatal("Failed to load blog", zap.Error(err))
	}

	e, err := handlers.NewServer(handlers.Dependencies{
		Config:         cfg,
		Logger:         logger,
		Store:          store,
		Blog:           blog,
		RateLimitStore: rateStore,
	})
	if err != nil {
		logger.Fatal("Failed to build server", zap.Error(err))
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", zap.Error(err))
	}
	// In-flight deliveries finish before exit
	if err := store.Close(ctx); err != nil {
		logger.Warn("Pending deliveries abandoned", zap.Error(err))
	}
}
