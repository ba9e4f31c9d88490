package observe

import (
	"context"
	"time"
)

// FetchFunc is the signature for instrumented upstream fetches.
type FetchFunc func(ctx context.Context, meta FetchMeta) ([]byte, error)

// Instrument wraps upstream fetches with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe FetchFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped function are recorded and propagated
//     unchanged.
type Instrument struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates a new Instrument with the given telemetry components.
func NewInstrument(tracer Tracer, metrics Metrics, logger Logger) *Instrument {
	return &Instrument{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a FetchFunc with tracing, metrics, and logging.
func (in *Instrument) Wrap(fn FetchFunc) FetchFunc {
	return func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		ctx, span := in.tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx, meta)
		duration := time.Since(start)

		in.tracer.EndSpan(span, err)
		in.metrics.RecordFetch(ctx, meta, duration, err)

		logger := in.logger.WithComponent("upstream")
		fields := []Field{
			{Key: "key", Value: meta.Key},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "fetch failed", fields...)
		} else {
			fields = append(fields, Field{Key: "bytes", Value: len(result)})
			logger.Info(ctx, "fetch completed", fields...)
		}

		return result, err
	}
}

// InstrumentFromObserver creates an Instrument from an Observer.
// This is a convenience function for common use cases.
func InstrumentFromObserver(obs Observer) (*Instrument, error) {
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(tracer, metrics, obs.Logger()), nil
}

// MetricsFromObserver creates a Metrics from an Observer's meter. It is
// intended for wiring cache and reaper telemetry without the fetch wrapper.
func MetricsFromObserver(obs Observer) (Metrics, error) {
	return newMetrics(obs.Meter())
}
