package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academy-api/core/cache"
	"academy-api/core/config"
	"academy-api/core/database"
	"academy-api/core/logger"
	appmw "academy-api/core/middleware"
	"academy-api/core/storage"
	"academy-api/modules/calendar"
	calendarWorker "academy-api/modules/calendar/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the API: config, database, redis, module wiring, the warm-up
// worker and the HTTP listener. Blocks until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.GetSafe()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	// Export storage is optional; without a bucket the export endpoint
	// reports itself unconfigured.
	var exportStorage storage.ExportStorage
	if cfg.AWS.ExportBucket != "" {
		exportStorage, err = storage.NewS3Storage(cfg.AWS)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("AWS_EXPORT_BUCKET not set; calendar export disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	mw := appmw.NewMiddleware(redisCache)
	e.Use(mw.RequestIDMiddleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	calendarService := calendar.Init(e, db, redisCache, exportStorage, cfg)

	warmup := calendarWorker.NewWarmupWorker(cfg.Redis, redisCache, calendarService)
	if err := warmup.Start(); err != nil {
		return err
	}
	defer warmup.Shutdown()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("HTTP server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
