package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"myground/internal/cache"
	"myground/internal/config"
	"myground/internal/database"
	"myground/internal/logger"
	"myground/internal/repository"
	"myground/internal/services"
)

// Seeds the filter taxonomy. Safe to run repeatedly.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	if err := database.Connect(cfg, zlog); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(database.GetDB(), zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Seeding invalidates the cached taxonomy when redis is configured
	var filterCache *cache.Cache
	if cfg.Redis.URL != "" {
		if filterCache, err = cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL); err != nil {
			zlog.Warn("redis unavailable, cached options expire on their own", zap.Error(err))
			filterCache = nil
		} else {
			defer filterCache.Close()
		}
	}

	filters := services.NewFilterService(repository.NewRepository(database.GetDB()), filterCache, zlog)
	n, err := filters.Seed(ctx)
	if err != nil {
		zlog.Fatal("failed to seed filter options", zap.Error(err))
	}

	zlog.Info("filter options seeded", zap.Int("rows", n))
}
