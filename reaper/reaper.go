package reaper

import (
	"context"
	"fmt"
	"time"

	"github.com/avelis/clipgate/observe"
)

// DefaultInterval is the default delay between cleanup passes.
const DefaultInterval = 10 * time.Minute

// Sweeper removes dead entries from a store.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Sweep must honor cancellation/deadlines.
// - Errors: Sweep returns the number of entries removed before any error.
type Sweeper interface {
	// Name identifies the store for logs and metrics.
	Name() string

	// Sweep removes dead entries and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
}

// SweeperFunc adapts a function to the Sweeper interface.
type SweeperFunc struct {
	SweepName string
	Fn        func(ctx context.Context) (int, error)
}

func (s SweeperFunc) Name() string { return s.SweepName }

func (s SweeperFunc) Sweep(ctx context.Context) (int, error) { return s.Fn(ctx) }

// Config holds configuration for a Reaper.
type Config struct {
	// Interval is the delay between passes. Default: 10 minutes.
	Interval time.Duration

	// Logger receives per-pass results. Default: no-op.
	Logger observe.Logger

	// Metrics receives removal counts. Default: no-op.
	Metrics observe.Metrics
}

// Reaper periodically sweeps a set of stores.
type Reaper struct {
	config   Config
	sweepers []Sweeper
}

// New creates a Reaper over the given sweepers.
func New(config Config, sweepers ...Sweeper) *Reaper {
	// Apply defaults
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	if config.Metrics == nil {
		config.Metrics = observe.NopMetrics()
	}

	return &Reaper{
		config:   config,
		sweepers: sweepers,
	}
}

// Run sweeps on the configured interval until ctx is canceled. A failing
// or panicking sweeper is logged and skipped for the rest of the pass;
// the schedule continues.
func (r *Reaper) Run(ctx context.Context) {
	logger := r.config.Logger.WithComponent("reaper")

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "reaper stopped")
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass over all sweepers and returns the total number
// of entries removed.
func (r *Reaper) Sweep(ctx context.Context) int {
	logger := r.config.Logger.WithComponent("reaper")

	total := 0
	for _, s := range r.sweepers {
		removed, err := r.sweep(ctx, s)
		if err != nil {
			logger.Error(ctx, "sweep failed",
				observe.Field{Key: "store", Value: s.Name()},
				observe.Field{Key: "error", Value: err.Error()},
			)
			continue
		}

		r.config.Metrics.RecordSweep(ctx, s.Name(), removed)
		if removed > 0 {
			logger.Info(ctx, "sweep complete",
				observe.Field{Key: "store", Value: s.Name()},
				observe.Field{Key: "removed", Value: removed},
			)
		}
		total += removed
	}
	return total
}

// sweep runs one sweeper, converting a panic into an error.
func (r *Reaper) sweep(ctx context.Context, s Sweeper) (removed int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("reaper: sweeper %q panicked: %v", s.Name(), rec)
		}
	}()
	return s.Sweep(ctx)
}
