package upstream

import (
	"context"
	"sync"
	"time"
)

// BreakerState represents the circuit breaker state.
type BreakerState int

const (
	// BreakerClosed means fetches flow normally.
	BreakerClosed BreakerState = iota
	// BreakerOpen means fetches are rejected until the reset timeout.
	BreakerOpen
	// BreakerHalfOpen means a single probe fetch is allowed through.
	BreakerHalfOpen
)

// String returns the string representation of the state.
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before opening.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the breaker stays open before probing.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// IsFailure determines if an error counts toward opening.
	// Default: all non-nil errors count.
	IsFailure func(err error) bool
}

// Breaker stops fetches to an upstream that keeps failing, giving it a
// recovery window instead of hammering it with doomed requests.
type Breaker struct {
	config BreakerConfig

	mu          sync.Mutex
	state       BreakerState
	failures    int
	lastFailure time.Time
	probing     bool

	now func() time.Time
}

// NewBreaker creates a circuit breaker.
func NewBreaker(config BreakerConfig) *Breaker {
	// Apply defaults
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &Breaker{
		config: config,
		state:  BreakerClosed,
		now:    time.Now,
	}
}

// Execute runs the operation through the breaker.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.beforeFetch(); err != nil {
		return err
	}

	err := op(ctx)
	b.afterFetch(err)
	return err
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Reset closes the breaker and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = BreakerClosed
	b.failures = 0
	b.probing = false
}

func (b *Breaker) beforeFetch() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.stateLocked() {
	case BreakerOpen:
		return ErrCircuitOpen
	case BreakerHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.state = BreakerHalfOpen
		b.probing = true
	}
	return nil
}

func (b *Breaker) afterFetch(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.config.IsFailure(err) {
		b.state = BreakerClosed
		b.failures = 0
		b.probing = false
		return
	}

	b.failures++
	b.lastFailure = b.now()
	b.probing = false
	if b.failures >= b.config.MaxFailures {
		b.state = BreakerOpen
	}
}

// stateLocked resolves the effective state, promoting open to half-open
// once the reset timeout has elapsed.
func (b *Breaker) stateLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.lastFailure) >= b.config.ResetTimeout {
		b.state = BreakerHalfOpen
		b.probing = false
	}
	return b.state
}
