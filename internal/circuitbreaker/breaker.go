// Package circuitbreaker guards calls to ad platforms. Each platform gets
// its own breaker; an open breaker rejects calls until its open duration
// has elapsed, then admits a single trial call.
package circuitbreaker

import (
	"sync"
	"time"
)

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Config controls when a breaker opens and how long it stays open.
type Config struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	OpenDuration     time.Duration `yaml:"open_duration"`
}

func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		OpenDuration:     time.Minute,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.OpenDuration <= 0 {
		c.OpenDuration = def.OpenDuration
	}
	return c
}

// CircuitBreaker is the check-then-record contract callers use around a
// platform call. CanExecute and the following Record call are not atomic.
type CircuitBreaker interface {
	CanExecute() bool
	RecordSuccess()
	RecordFailure()
	Release()
	State() State
	Name() string
}

// Clock abstracts time so tests can move it forward.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StateChangeFunc is invoked after every transition, outside the lock.
type StateChangeFunc func(name string, from, to State)

type Breaker struct {
	name          string
	cfg           Config
	clock         Clock
	onStateChange StateChangeFunc

	mu             sync.Mutex
	state          State
	failures       int
	lastTransition time.Time
	trialInFlight  bool
}

type Option func(*Breaker)

func WithClock(c Clock) Option {
	return func(b *Breaker) {
		b.clock = c
	}
}

func WithStateChange(fn StateChangeFunc) Option {
	return func(b *Breaker) {
		b.onStateChange = fn
	}
}

func New(name string, cfg Config, opts ...Option) *Breaker {
	b := &Breaker{
		name:  name,
		cfg:   cfg.withDefaults(),
		clock: systemClock{},
		state: StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastTransition = b.clock.Now()
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) Config() Config {
	return b.cfg
}

// State returns the current state. An open breaker whose open duration has
// elapsed still reports open until the next CanExecute moves it on.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// LastTransition returns when the breaker last changed state.
func (b *Breaker) LastTransition() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastTransition
}

// CanExecute reports whether a call may be made now. In half-open state
// only the first caller gets true until the trial is recorded.
func (b *Breaker) CanExecute() bool {
	b.mu.Lock()
	var from State
	allowed := false
	transitioned := false

	switch b.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if b.clock.Now().Sub(b.lastTransition) >= b.cfg.OpenDuration {
			from = b.setState(StateHalfOpen)
			transitioned = true
			b.trialInFlight = true
			allowed = true
		}
	case StateHalfOpen:
		if !b.trialInFlight {
			b.trialInFlight = true
			allowed = true
		}
	}
	b.mu.Unlock()

	if transitioned {
		b.notify(from, StateHalfOpen)
	}
	return allowed
}

// RecordSuccess closes a half-open breaker and clears the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	b.failures = 0
	b.trialInFlight = false
	if b.state != StateHalfOpen {
		b.mu.Unlock()
		return
	}
	from := b.setState(StateClosed)
	b.mu.Unlock()

	b.notify(from, StateClosed)
}

// RecordFailure counts a failure. Reaching the threshold while closed, or
// failing the half-open trial, opens the breaker.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	var from State
	opened := false

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			from = b.setState(StateOpen)
			opened = true
		}
	case StateHalfOpen:
		b.failures = b.cfg.FailureThreshold
		b.trialInFlight = false
		from = b.setState(StateOpen)
		opened = true
	case StateOpen:
		b.failures++
	}
	b.mu.Unlock()

	if opened {
		b.notify(from, StateOpen)
	}
}

// Release hands back an admitted half-open trial without an outcome, so the
// next CanExecute may run it. It is a no-op in other states.
func (b *Breaker) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateHalfOpen {
		b.trialInFlight = false
	}
}

// Reset forces the breaker back to closed.
func (b *Breaker) Reset() {
	b.mu.Lock()
	b.failures = 0
	b.trialInFlight = false
	from := b.setState(StateClosed)
	b.mu.Unlock()

	if from != StateClosed {
		b.notify(from, StateClosed)
	}
}

// setState must be called with mu held. It returns the previous state.
func (b *Breaker) setState(to State) State {
	from := b.state
	b.state = to
	b.lastTransition = b.clock.Now()
	return from
}

func (b *Breaker) notify(from, to State) {
	if b.onStateChange != nil {
		b.onStateChange(b.name, from, to)
	}
}
