package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fullcourtvision/backend/internal/api"
	"github.com/fullcourtvision/backend/internal/api/middleware"
	"github.com/fullcourtvision/backend/internal/services"
	"github.com/fullcourtvision/backend/pkg/config"
	"github.com/fullcourtvision/backend/pkg/database"
	"github.com/fullcourtvision/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	log := logger.InitLogger("", cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to the hosted serving store
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Open the scraped staging snapshot
	staging, err := database.NewStagingConnection(cfg.StagingPath, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to open staging database: %v", err)
	}
	defer staging.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	statsService := services.NewStatsService(db, log)
	publisher := services.NewPublisherService(
		staging,
		db,
		log,
		cfg.CircuitBreakerThreshold,
		cfg.PublishBatchSize,
		cfg.PublishTimeout,
	)

	// Parse publish interval
	publishInterval, err := time.ParseDuration(cfg.PublishInterval)
	if err != nil {
		logrus.Warnf("Invalid publish interval, using default 6h: %v", err)
		publishInterval = 6 * time.Hour
	}

	refresher := services.NewRefresherService(publisher, cacheService, log, publishInterval, cfg.SkipInitialPublish)
	if cfg.EnableBackgroundJobs {
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	// Liveness endpoint for the load balancer
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, api.Dependencies{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Cache:     cacheService,
		Stats:     statsService,
		Publisher: publisher,
		Refresher: refresher,
		Logger:    log,
	})

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
