package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nextcareer-backend/config"
	_ "nextcareer-backend/docs" // Important for Swagger
	v1 "nextcareer-backend/internal/delivery/http/v1"
	"nextcareer-backend/internal/realtime"
	"nextcareer-backend/internal/repository/postgres"
	"nextcareer-backend/internal/usecase"
	"nextcareer-backend/pkg/database"
	"nextcareer-backend/pkg/logger"
	"nextcareer-backend/pkg/redis"
	"nextcareer-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           NextCareer Backend API
// @version         1.0
// @description     Job application lifecycle and notification dispatch service.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting nextcareer backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 5. Setup Blob Store
	blobs, err := storage.NewClient(context.Background(), storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to create blob store client", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	scheduleRepo := postgres.NewScheduleRepository(dbPool)

	// 7. Setup Presence Hub
	hub := realtime.NewHub()

	// 8. Setup UseCases
	validate := validator.New()
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, scheduleRepo, userRepo, notificationRepo, hub)
	scheduleUC := usecase.NewScheduleUsecase(scheduleRepo, validate)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, hub)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC:  applicationUC,
		ScheduleUC:     scheduleUC,
		NotificationUC: notificationUC,
		JobUC:          jobUC,
		UserRepo:       userRepo,
		Hub:            hub,
		Blobs:          blobs,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
