package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"fleetrental-backend/internal/config"
	"fleetrental-backend/internal/jobs"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository/kv"
	"fleetrental-backend/internal/scheduler"
	"fleetrental-backend/internal/storage"
	"fleetrental-backend/internal/storage/postgres"
	"fleetrental-backend/internal/storage/redis"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'report-overdue-rentals')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting fleet rental cron runner...", "store_backend", cfg.Store.Backend)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err)
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer store.Close()

	rentRepo := kv.NewRentRepository(store)
	carRepo := kv.NewCarRepository(store)
	runner := jobs.NewJobRunner(rentRepo, carRepo, metrics.NewCollector(), cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "report-overdue-rentals":
			runner.ReportOverdueRentals()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(runner)
	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Cron runner stopped")
}

// openStore opens the shared ledger store. The cron runner only reads, but
// it still goes through the same backends as the server so both observe the
// same state.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Backend {
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
		return nil, fmt.Errorf("the cron runner needs a shared store backend, got %q", cfg.Store.Backend)
	}
}
