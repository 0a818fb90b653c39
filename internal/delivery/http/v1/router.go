package v1

import (
	"net/http"
	"time"

	"nextcareer-backend/config"
	"nextcareer-backend/internal/delivery/http/middleware"
	"nextcareer-backend/internal/delivery/http/response"
	"nextcareer-backend/internal/domain"
	"nextcareer-backend/internal/realtime"
	"nextcareer-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ApplicationUC  domain.ApplicationUsecase
	ScheduleUC     domain.ScheduleUsecase
	NotificationUC domain.NotificationUsecase
	JobUC          domain.JobUsecase
	UserRepo       domain.UserRepository
	Hub            *realtime.Hub
	Blobs          *storage.Client
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	// Realtime channel sits outside the versioned API group
	r.GET("/ws", realtime.ServeWS(deps.Hub, deps.Config.FrontendURL))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewApplicationHandler(v1, deps.ApplicationUC)
	NewScheduleHandler(v1, deps.ScheduleUC)
	NewNotificationHandler(v1, deps.NotificationUC)
	NewJobHandler(v1, deps.JobUC)

	// File endpoints get their own stricter rate limit
	uploads := v1.Group("")
	uploads.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()))
	NewFileHandler(uploads, deps.Blobs, deps.UserRepo)

	return r
}
