// @title           Construction Stage API
// @version         1.0
// @description     CRUD service for construction stage scheduling records

// @host      localhost:8000
// @BasePath  /api/stages

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
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"construction-stage-api/internal/config"
	"construction-stage-api/internal/database"
	"construction-stage-api/internal/job"
	"construction-stage-api/internal/metrics"
	"construction-stage-api/internal/repository"
	"construction-stage-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Construction Stage Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize database; a failed connect does not kill the pod, the
	// connection is retried in the background
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	// Every consumer holds the handle, not the connection, so a connect
	// that lands after startup reaches them all
	dbHandle := database.NewHandle(nil)

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, func(asyncDB *gorm.DB) {
			logger.Info("Database connected (async)")
			database.RegisterMetricsCallbacks(asyncDB, m)
			if err := database.AutoMigrateWithRetry(asyncDB, logger, 3); err != nil {
				logger.Error("Failed to run database migrations", zap.Error(err))
			}
			dbHandle.Set(asyncDB)
		})
	} else {
		logger.Info("Database connected successfully")

		database.RegisterMetricsCallbacks(db, m)

		if err := database.AutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
		dbHandle.Set(db)
	}

	// Start business metrics collector
	collector := metrics.NewBusinessMetricsCollector(dbHandle, m, logger)
	collector.Start()
	defer collector.Stop()

	// Schedule the duration audit job
	var scheduler *cron.Cron
	if cfg.Audit.Enabled {
		stageRepo := repository.NewStageRepositoryFromHandle(dbHandle)
		auditJob := job.NewDurationAuditJob(stageRepo, m, logger)

		scheduler = cron.New()
		if _, err := scheduler.AddJob(cfg.Audit.Schedule, auditJob); err != nil {
			logger.Warn("Failed to schedule duration audit job",
				zap.String("schedule", cfg.Audit.Schedule),
				zap.Error(err))
		} else {
			scheduler.Start()
			logger.Info("Duration audit job scheduled",
				zap.String("schedule", cfg.Audit.Schedule))
		}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:             dbHandle,
		Logger:         logger,
		BasePath:       cfg.Server.BasePath,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Construction Stage Service started",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	logConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return logConfig.Build()
}
