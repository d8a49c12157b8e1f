package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Runner is one pass of a background job.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler runs a job immediately and then on every tick. It implements
// suture.Service, so a failing pass never stops the loop; only context
// cancellation does.
type Scheduler struct {
	name       string
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(name string, runner Runner, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &Scheduler{
		name:       name,
		runner:     runner,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler", "job", name),
	}
}

func (s *Scheduler) Serve(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) String() string {
	return s.name
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runner.Run(runCtx); err != nil {
		s.logger.Error("job failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Debug("job finished", "duration", time.Since(start))
}
