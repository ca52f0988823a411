package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "fleetrental-backend/internal/api/http"
	"fleetrental-backend/internal/config"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository/kv"
	"fleetrental-backend/internal/security"
	"fleetrental-backend/internal/service"
	"fleetrental-backend/internal/storage"
	"fleetrental-backend/internal/storage/memory"
	"fleetrental-backend/internal/storage/postgres"
	"fleetrental-backend/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting fleet rental ledger...", "log_level", cfg.Log.Level, "store_backend", cfg.Store.Backend)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err)
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer store.Close()

	accountRepo := kv.NewAccountRepository(store)
	carRepo := kv.NewCarRepository(store)
	rentRepo := kv.NewRentRepository(store)

	collector := metrics.NewCollector()
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTokenExpiry)*time.Minute)

	accountSvc := service.NewAccountService(accountRepo, collector)
	fleetSvc := service.NewFleetService(carRepo, collector)
	rentalSvc := service.NewRentalService(rentRepo, carRepo, accountRepo, collector)

	router := api.NewRouter(accountSvc, fleetSvc, rentalSvc, tokens, collector)

	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		logger.Warn("Using in-memory store; the ledger will not survive a restart")
		return memory.NewStore(), nil
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	case "redis":
		return redis.NewStore(cfg.Redis.URL)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
