package observe

import (
	"context"
	"io"
	"testing"
	"time"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_WithComponent measures creating component-scoped loggers.
func BenchmarkLogger_WithComponent(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.WithComponent("cache")
	}
}

// BenchmarkLogger_LevelFiltering measures overhead of level filtering.
func BenchmarkLogger_LevelFiltering(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard) // Only error level
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug(ctx, "filtered debug")
		logger.Info(ctx, "filtered info")
		logger.Warn(ctx, "filtered warn")
	}
}

// BenchmarkFetchMeta_SpanName measures span name generation.
func BenchmarkFetchMeta_SpanName(b *testing.B) {
	meta := FetchMeta{Key: "vid:dQw4w9WgXcQ", Source: "youtube"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = meta.SpanName()
	}
}

// BenchmarkMetrics_RecordFetch measures metrics recording.
func BenchmarkMetrics_RecordFetch(b *testing.B) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{
		ServiceName: "bench",
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
	})
	if err != nil {
		b.Fatalf("failed to create observer: %v", err)
	}
	defer obs.Shutdown(ctx)

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		b.Fatalf("failed to create metrics: %v", err)
	}

	meta := FetchMeta{Key: "vid:dQw4w9WgXcQ", Source: "youtube"}
	duration := 100 * time.Millisecond

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		metrics.RecordFetch(ctx, meta, duration, nil)
	}
}

// BenchmarkInstrument_Wrap measures the full instrumentation wrapper.
func BenchmarkInstrument_Wrap(b *testing.B) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{
		ServiceName: "bench",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: false},
	})
	if err != nil {
		b.Fatalf("failed to create observer: %v", err)
	}
	defer obs.Shutdown(ctx)

	in, err := InstrumentFromObserver(obs)
	if err != nil {
		b.Fatalf("failed to create instrument: %v", err)
	}

	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		return []byte("result"), nil
	})
	meta := FetchMeta{Key: "vid:dQw4w9WgXcQ", Source: "youtube"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = wrapped(ctx, meta)
	}
}

// BenchmarkConcurrent_Logger measures concurrent logging.
func BenchmarkConcurrent_Logger(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info(ctx, "concurrent message", Field{Key: "iteration", Value: i})
			i++
		}
	})
}

// BenchmarkConfig_Validate measures configuration validation.
func BenchmarkConfig_Validate(b *testing.B) {
	cfg := Config{
		ServiceName: "clipgate",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "prometheus"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Validate()
	}
}
