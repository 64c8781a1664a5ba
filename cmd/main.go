package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"myground/internal/auth"
	"myground/internal/cache"
	"myground/internal/config"
	"myground/internal/database"
	"myground/internal/handlers"
	"myground/internal/jobs"
	"myground/internal/logger"
	"myground/internal/repository"
	"myground/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer zlog.Sync()

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret, cfg.App.JWTExpiryHours)

	// Connect to database
	if err := database.Connect(cfg, zlog); err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.AutoMigrate(database.GetDB(), zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Filter cache is optional
	var filterCache *cache.Cache
	if cfg.Redis.URL != "" {
		filterCache, err = cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			zlog.Warn("redis unavailable, serving filter options uncached", zap.Error(err))
			filterCache = nil
		} else {
			defer filterCache.Close()
			zlog.Info("filter cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))
		}
	}

	// Initialize repository and services
	repo := repository.NewRepository(database.GetDB())
	drafts := services.NewDraftService(repo, zlog)
	svc := handlers.Services{
		Drafts:      drafts,
		Properties:  services.NewPropertyService(repo, zlog),
		Filters:     services.NewFilterService(repo, filterCache, zlog),
		Preferences: services.NewPreferenceService(repo),
	}

	// Abandoned draft sweep, disabled unless DRAFT_RETENTION is set
	retentionJob := jobs.NewDraftRetentionJob(drafts, cfg.Drafts.Retention, cfg.Drafts.SweepSpec, zlog)
	if err := retentionJob.Start(ctx); err != nil {
		zlog.Fatal("failed to start draft retention job", zap.Error(err))
	}
	defer retentionJob.Stop()

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(router, svc, zlog, cfg.App.MetricsEnabled)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	zlog.Info("shutting down server")

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	zlog.Info("server exited")
}
