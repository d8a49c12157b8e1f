package circuitbreaker

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"campaign_sync/internal/metrics"
)

// Registry hands out one breaker per platform, creating it on first use.
// It is created at startup and passed to everything that calls platforms.
type Registry struct {
	defaults  Config
	overrides map[string]Config
	clock     Clock
	logger    *slog.Logger

	mu       sync.Mutex
	breakers map[string]*Breaker
}

type RegistryOption func(*Registry)

func WithRegistryClock(c Clock) RegistryOption {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithPlatformConfig overrides the breaker config for one platform.
func WithPlatformConfig(platform string, cfg Config) RegistryOption {
	return func(r *Registry) {
		r.overrides[platform] = cfg
	}
}

func NewRegistry(defaults Config, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		defaults:  defaults.withDefaults(),
		overrides: make(map[string]Config),
		clock:     systemClock{},
		logger:    logger.With("component", "circuit_breaker"),
		breakers:  make(map[string]*Breaker),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the breaker for platform.
func (r *Registry) Get(platform string) CircuitBreaker {
	return r.breaker(platform)
}

func (r *Registry) breaker(platform string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[platform]; ok {
		return b
	}

	cfg, ok := r.overrides[platform]
	if !ok {
		cfg = r.defaults
	}

	b := New(platform, cfg, WithClock(r.clock), WithStateChange(r.onStateChange))
	r.breakers[platform] = b
	metrics.CircuitBreakerState.WithLabelValues(platform).Set(metrics.StateValue(string(StateClosed)))
	return b
}

// Reset drops every breaker; the next Get starts from closed.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for platform := range r.breakers {
		metrics.CircuitBreakerState.WithLabelValues(platform).Set(metrics.StateValue(string(StateClosed)))
	}
	r.breakers = make(map[string]*Breaker)
	r.logger.Info("circuit breakers reset")
}

// ResetPlatform closes the breaker of one platform if it exists.
func (r *Registry) ResetPlatform(platform string) bool {
	r.mu.Lock()
	b, ok := r.breakers[platform]
	r.mu.Unlock()

	if !ok {
		return false
	}
	b.Reset()
	return true
}

// Status is a point-in-time view of one breaker.
type Status struct {
	Platform       string    `json:"platform"`
	State          State     `json:"state"`
	Failures       int       `json:"failures"`
	LastTransition time.Time `json:"lastTransition"`
}

// Snapshot lists the breakers created so far, sorted by platform.
func (r *Registry) Snapshot() []Status {
	r.mu.Lock()
	breakers := make([]*Breaker, 0, len(r.breakers))
	for _, b := range r.breakers {
		breakers = append(breakers, b)
	}
	r.mu.Unlock()

	out := make([]Status, 0, len(breakers))
	for _, b := range breakers {
		b.mu.Lock()
		out = append(out, Status{
			Platform:       b.name,
			State:          b.state,
			Failures:       b.failures,
			LastTransition: b.lastTransition,
		})
		b.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out
}

func (r *Registry) onStateChange(name string, from, to State) {
	r.logger.Warn("circuit breaker state transition",
		"platform", name,
		"from", from,
		"to", to,
	)
	metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.StateValue(string(to)))
	metrics.CircuitBreakerTransitions.WithLabelValues(name, string(from), string(to)).Inc()
}
