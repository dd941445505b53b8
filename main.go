package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/calendar"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/config"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/handlers"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/middleware"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/routes"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/services/booking"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	logger := utils.NewLogger(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	gateway, err := calendar.NewGoogleGateway(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar gateway: %v", err)
	}

	// Reservation holds live in Redis when configured, in-process otherwise.
	var holds booking.HoldStore
	if cfg.RedisAddr != "" {
		client, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisHoldDB)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to connect hold store: %v", err)
		}
		holds = booking.NewRedisHoldStore(client)
	} else {
		logger.Info("main: no Redis configured, using in-memory hold store")
		holds = booking.NewMemoryHoldStore()
	}

	availabilityService := &booking.DefaultAvailabilityService{
		Gateway: gateway,
		Holds:   holds,
		HoldTTL: time.Duration(cfg.HoldTTLSeconds) * time.Second,
		Logger:  logger,
	}
	appointmentService := &booking.DefaultAppointmentService{
		Gateway: gateway,
		Holds:   holds,
		Logger:  logger,
	}

	bookingHandler := handlers.NewBookingHandler(availabilityService, appointmentService, logger)
	manifestHandler := handlers.NewManifestHandler(cfg.ManifestFile, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler(logger))
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(cfg.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, cfg, bookingHandler, manifestHandler, logger)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
