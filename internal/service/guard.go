package service

import (
	"context"
	"errors"
	"time"

	"campaign_sync/internal/circuitbreaker"
	"campaign_sync/internal/metrics"
	"campaign_sync/internal/platform"
)

// invoke runs fn with a per-call timeout and reports the outcome to cb.
// Callers check cb.CanExecute first. A returned error counts as a platform
// failure unless it matches platform.ErrRejected or platform.ErrNotFound:
// those are answers and count as success, though the error is still
// returned.
func invoke(ctx context.Context, cb circuitbreaker.CircuitBreaker, platformName, method string, timeout time.Duration, fn func(ctx context.Context) error) error {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(callCtx)
	metrics.PlatformCallDuration.WithLabelValues(platformName, method).Observe(time.Since(start).Seconds())

	if err != nil && !answered(err) {
		cb.RecordFailure()
		return err
	}
	cb.RecordSuccess()
	return err
}

func answered(err error) bool {
	return errors.Is(err, platform.ErrRejected) || errors.Is(err, platform.ErrNotFound)
}
