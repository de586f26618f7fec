package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"construction-stage-api/internal/database"
	"construction-stage-api/internal/handler"
	"construction-stage-api/internal/metrics"
	"construction-stage-api/internal/middleware"
	"construction-stage-api/internal/repository"
	"construction-stage-api/internal/service"
)

// Config holds everything the router wiring needs. DB is a swappable
// handle so routes built before the first successful connect start
// serving once the connection arrives.
type Config struct {
	DB             *database.Handle
	Logger         *zap.Logger
	BasePath       string
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// Setup builds the gin engine with all middleware, handlers and routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Initialize repositories
	stageRepo := repository.NewStageRepositoryFromHandle(cfg.DB)

	// Initialize services
	stageService := service.NewStageService(stageRepo, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	stageHandler := handler.NewStageHandler(stageService)
	healthHandler := handler.NewHealthHandler(cfg.DB)

	// Operational endpoints at root
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes with base path
	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)

		api.GET("", stageHandler.ListStages)
		api.POST("", stageHandler.CreateStage)
		api.GET("/:stageId", stageHandler.GetStage)
		api.PATCH("/:stageId", stageHandler.PatchStage)
		api.DELETE("/:stageId", stageHandler.DeleteStage)
	}

	return r
}
