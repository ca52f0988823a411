package jobs

import (
	"fleetrental-backend/internal/config"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/metrics"
	"fleetrental-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentRepo  repository.RentRepository
	carRepo   repository.CarRepository
	collector *metrics.Collector
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	rentRepo repository.RentRepository,
	carRepo repository.CarRepository,
	collector *metrics.Collector,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		rentRepo:  rentRepo,
		carRepo:   carRepo,
		collector: collector,
		config:    cfg,
	}
}

// Config exposes the configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
