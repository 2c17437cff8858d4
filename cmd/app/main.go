package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "roombook/docs"
	"roombook/internal/availability"
	"roombook/internal/booking"
	"roombook/internal/config"
	"roombook/internal/db"
	"roombook/internal/logger"
	"roombook/internal/notify"
	"roombook/internal/room"
	"roombook/internal/server"
)

// @title RoomBook API
// @version 1.0
// @description API for room booking with counter-based admission control.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting RoomBook application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	store := availability.NewRedisStore(rdb)
	if err := store.Ping(context.Background()); err != nil {
		logger.Fatalf("Failed to connect to redis: %v", err)
	}
	logger.Info("Counter store connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	caps := room.NewSeatCapacity(cfg.SeatsPrivate, cfg.SeatsConference, cfg.SeatsShared)
	reconciler := availability.NewReconciler(
		store,
		room.NewRepository(database),
		booking.NewRepository(database, caps),
		caps,
		cfg.ReconcileWindowDays,
	)
	go reconciler.Start(ctx, cfg.ReconcileInterval)

	notifier := notify.New(rdb,
		cfg.NotifyFrom, cfg.NotifySender,
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	go notifier.Start(ctx)

	srv := server.New(database, cfg, store, reconciler, notifier)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
