package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records telemetry for fetches, cache activity, and reaping.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordFetch records an upstream fetch with duration and error status.
	RecordFetch(ctx context.Context, meta FetchMeta, duration time.Duration, err error)

	// RecordLookup records a cache lookup as a hit or a miss.
	RecordLookup(ctx context.Context, hit bool)

	// RecordEviction records a cache eviction with its cause.
	RecordEviction(ctx context.Context, cause string)

	// RecordSweep records a reaper pass over a named store.
	RecordSweep(ctx context.Context, store string, removed int)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	fetchTotal   metric.Int64Counter
	fetchErrors  metric.Int64Counter
	fetchHist    metric.Float64Histogram
	lookupCount  metric.Int64Counter
	evictCount   metric.Int64Counter
	sweepRemoved metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	fetchTotal, err := meter.Int64Counter(
		"media.fetch.total",
		metric.WithDescription("Total number of upstream fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"media.fetch.errors",
		metric.WithDescription("Total number of upstream fetch errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchHist, err := meter.Float64Histogram(
		"media.fetch.duration_ms",
		metric.WithDescription("Upstream fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookupCount, err := meter.Int64Counter(
		"cache.lookups",
		metric.WithDescription("Cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	evictCount, err := meter.Int64Counter(
		"cache.evictions",
		metric.WithDescription("Cache evictions by cause"),
		metric.WithUnit("{eviction}"),
	)
	if err != nil {
		return nil, err
	}

	sweepRemoved, err := meter.Int64Counter(
		"reaper.removed",
		metric.WithDescription("Entries removed by reaper passes, by store"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		fetchTotal:   fetchTotal,
		fetchErrors:  fetchErrors,
		fetchHist:    fetchHist,
		lookupCount:  lookupCount,
		evictCount:   evictCount,
		sweepRemoved: sweepRemoved,
	}, nil
}

// RecordFetch records metrics for an upstream fetch.
func (m *metricsImpl) RecordFetch(ctx context.Context, meta FetchMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("media.key", meta.Key),
	}
	if meta.Source != "" {
		attrs = append(attrs, attribute.String("media.source", meta.Source))
	}

	opt := metric.WithAttributes(attrs...)

	m.fetchTotal.Add(ctx, 1, opt)
	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}
	m.fetchHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordLookup records a cache hit or miss.
func (m *metricsImpl) RecordLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordEviction records a cache eviction by cause.
func (m *metricsImpl) RecordEviction(ctx context.Context, cause string) {
	m.evictCount.Add(ctx, 1, metric.WithAttributes(attribute.String("cause", cause)))
}

// RecordSweep records a reaper pass.
func (m *metricsImpl) RecordSweep(ctx context.Context, store string, removed int) {
	m.sweepRemoved.Add(ctx, int64(removed), metric.WithAttributes(attribute.String("store", store)))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordFetch(ctx context.Context, meta FetchMeta, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordLookup(ctx context.Context, hit bool)                 {}
func (m *noopMetrics) RecordEviction(ctx context.Context, cause string)           {}
func (m *noopMetrics) RecordSweep(ctx context.Context, store string, removed int) {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics {
	return &noopMetrics{}
}
