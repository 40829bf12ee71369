package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsRisk/internal/ports"
)

// Scheduler wires the interval driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, logger: orDiscard(logger)}
}

// Start registers the pipeline with the provided scheduler. A failed run is
// logged and the schedule keeps going.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		report, err := s.pipeline.Run(ctx)
		if err != nil {
			s.logger.Error("scheduled run failed", "trigger", trigger.Format(time.RFC3339), "run_id", report.RunID, "error", err)
			return
		}
		s.logger.Info("scheduled run finished", "trigger", trigger.Format(time.RFC3339), "run_id", report.RunID)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
