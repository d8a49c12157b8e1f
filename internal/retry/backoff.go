// Package retry computes retry delays and runs operations with backoff.
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// BackoffConfig configures exponential backoff. Delay for attempt n is
// min(BaseDelay * Multiplier^n, MaxDelay), plus up to JitterFactor of that
// value when Jitter is set. The jittered delay never exceeds MaxDelay.
type BackoffConfig struct {
	BaseDelay    time.Duration `yaml:"base_delay"`
	Multiplier   float64       `yaml:"multiplier"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Jitter       bool          `yaml:"jitter"`
	JitterFactor float64       `yaml:"jitter_factor"`
}

// DefaultBackoffConfig returns the delays used when nothing is configured.
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		BaseDelay:    time.Second,
		Multiplier:   2,
		MaxDelay:     30 * time.Second,
		Jitter:       true,
		JitterFactor: 0.1,
	}
}

// Backoff is a pure delay calculator. The random source only feeds jitter.
type Backoff struct {
	cfg  BackoffConfig
	rand func() float64
}

type BackoffOption func(*Backoff)

// WithRandom replaces the jitter source. fn must return values in [0, 1).
func WithRandom(fn func() float64) BackoffOption {
	return func(b *Backoff) {
		b.rand = fn
	}
}

func NewBackoff(cfg BackoffConfig, opts ...BackoffOption) *Backoff {
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.JitterFactor < 0 {
		cfg.JitterFactor = 0
	}

	b := &Backoff{cfg: cfg, rand: rand.Float64}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backoff) Config() BackoffConfig {
	return b.cfg
}

// Delay returns the wait before retry number attempt (0-based). Negative
// attempts are treated as 0.
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	maxDelay := float64(b.cfg.MaxDelay)
	delay := float64(b.cfg.BaseDelay) * math.Pow(b.cfg.Multiplier, float64(attempt))
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay > maxDelay {
		delay = maxDelay
	}
	if delay < 0 {
		delay = 0
	}

	if b.cfg.Jitter && b.cfg.JitterFactor > 0 {
		delay += b.rand() * delay * b.cfg.JitterFactor
		delay = math.Min(delay, maxDelay)
	}

	return time.Duration(delay)
}
