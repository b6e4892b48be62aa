package main

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/CareVoice/carevoice-backend/config"
	"github.com/CareVoice/carevoice-backend/db"
	"github.com/CareVoice/carevoice-backend/handlers"
	"github.com/CareVoice/carevoice-backend/internal/store/postgres"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/router"
	"github.com/CareVoice/carevoice-backend/services"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	feedbackStore := postgres.NewFeedbackStore(pool,
		time.Duration(cfg.Database.AcquireTimeoutSeconds)*time.Second)

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	var limiter services.RateLimiter
	switch cfg.RateLimit.Backend {
	case config.RateLimitBackendRedis:
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.IsProduction() {
			redisOptions.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}
		limiter = services.NewRedisRateLimiter(redis.NewClient(redisOptions), cfg.RateLimit.MaxSubmissions, window)
	default:
		limiter = services.NewMemoryRateLimiter(cfg.RateLimit.MaxSubmissions, window)
	}

	authService := services.NewAuthService(cfg.Auth.AdminPassword, cfg.Auth.JWTSecretKey)
	submissionService := services.NewSubmissionService(feedbackStore, cfg.Intake.RequireSubmitterName)
	adminService := services.NewAdminService(feedbackStore)
	healthService := services.NewHealthService(feedbackStore, "PostgreSQL")

	r := router.Setup(router.Dependencies{
		Config:          cfg,
		AuthService:     authService,
		RateLimiter:     limiter,
		FeedbackHandler: handlers.NewFeedbackHandler(submissionService),
		AuthHandler:     handlers.NewAuthHandler(authService),
		AdminHandler:    handlers.NewAdminHandler(adminService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		StaticDir:       cfg.Server.StaticDir,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
