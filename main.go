// File: autoshop/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autoshop/config"
	"autoshop/cron"
	"autoshop/database"
	intervalRepo "autoshop/database/repository/interval"
	"autoshop/handlers"
	"autoshop/models"
	"autoshop/routes"
	"autoshop/services/scheduling"
	"autoshop/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Apply the configured fallback duration for unknown service types.
	if h := config.AppConfig.DefaultServiceHours; h > 0 {
		models.DefaultServiceDuration = time.Duration(h) * time.Hour
	}

	// repositories.
	ivRepo := intervalRepo.NewMongoIntervalRepo()

	// scheduling engine.
	loc, err := time.LoadLocation(config.AppConfig.ShopTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid shop timezone %q: %v", config.AppConfig.ShopTimezone, err)
	}
	engine := &scheduling.DefaultSchedulingEngine{
		Repo:   ivRepo,
		Locker: scheduling.NewRedisLocker(utils.GetLockClient()),
		Clock:  scheduling.SystemClock(),
		Slots: scheduling.SlotConfig{
			BusinessStartHour:  config.AppConfig.BusinessStartHour,
			BusinessEndHour:    config.AppConfig.BusinessEndHour,
			GranularityMinutes: config.AppConfig.SlotGranularityMin,
			Location:           loc,
		},
	}

	scheduleHandler := handlers.NewScheduleHandler(engine, ivRepo, logger)

	// Register routes.
	routes.RegisterRoutes(router, scheduleHandler)

	// Background sweep for forgotten timers.
	cron.InitTimerSweepWorker(ivRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
