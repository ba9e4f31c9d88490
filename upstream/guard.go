package upstream

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// MaxConcurrent caps fetches running at once. Extraction shells out to
	// heavyweight tooling, so this is deliberately small.
	// Default: 4
	MaxConcurrent int64

	// AcquireTimeout is how long a fetch waits for a free slot before
	// giving up with ErrTooManyFetches.
	// Default: 5s
	AcquireTimeout time.Duration

	// AttemptTimeout bounds each individual fetch attempt.
	// Default: 10s
	AttemptTimeout time.Duration

	// Retry retries failed attempts. Nil disables retries.
	Retry *Retry

	// Breaker rejects fetches while the upstream is known bad. Nil
	// disables the breaker.
	Breaker *Breaker
}

// Guard composes the protective layers around an upstream fetch:
// concurrency cap, circuit breaker, retry, and per-attempt timeout,
// applied in that order from the outside in.
type Guard struct {
	config GuardConfig
	sem    *semaphore.Weighted
}

// NewGuard creates a guard for upstream fetches.
func NewGuard(config GuardConfig) *Guard {
	// Apply defaults
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 4
	}
	if config.AcquireTimeout <= 0 {
		config.AcquireTimeout = 5 * time.Second
	}
	if config.AttemptTimeout <= 0 {
		config.AttemptTimeout = 10 * time.Second
	}

	return &Guard{
		config: config,
		sem:    semaphore.NewWeighted(config.MaxConcurrent),
	}
}

// Execute runs the operation through the guard.
func (g *Guard) Execute(ctx context.Context, op func(context.Context) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, g.config.AcquireTimeout)
	err := g.sem.Acquire(acquireCtx, 1)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyFetches
	}
	defer g.sem.Release(1)

	attempt := func(ctx context.Context) error {
		return g.timedAttempt(ctx, op)
	}

	run := attempt
	if g.config.Retry != nil {
		run = func(ctx context.Context) error {
			return g.config.Retry.Execute(ctx, attempt)
		}
	}

	if g.config.Breaker != nil {
		inner := run
		run = func(ctx context.Context) error {
			return g.config.Breaker.Execute(ctx, inner)
		}
	}

	return run(ctx)
}

// timedAttempt bounds a single attempt. The operation keeps running in
// its goroutine after a timeout fires; it is expected to observe its
// context and bail out.
func (g *Guard) timedAttempt(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.config.AttemptTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrFetchTimeout
		}
		return ctx.Err()
	}
}
