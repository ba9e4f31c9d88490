package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestInstrument_SuccessPath verifies a successful fetch records telemetry.
func TestInstrument_SuccessPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	in := NewInstrument(tracer, metrics, &noopLogger{})

	meta := FetchMeta{Key: "vid:dQw4w9WgXcQ", Source: "youtube"}
	want := []byte(`{"title":"test"}`)

	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		return want, nil
	})
	got, err := wrapped(context.Background(), meta)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("result = %q, want %q", got, want)
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "media.fetch.youtube" {
		t.Errorf("expected span name 'media.fetch.youtube', got %q", spans[0].Name())
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "media.fetch.total") == nil {
		t.Error("media.fetch.total metric not found")
	}
}

// TestInstrument_ErrorPath verifies a failed fetch records error telemetry.
func TestInstrument_ErrorPath(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	tracer := &tracerImpl{tracer: tp.Tracer("test")}

	metricReader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))
	metrics, _ := newMetrics(mp.Meter("test"))

	in := NewInstrument(tracer, metrics, &noopLogger{})

	meta := FetchMeta{Key: "vid:abc12345678"}
	testErr := errors.New("extraction blocked")

	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		return nil, testErr
	})
	_, err := wrapped(context.Background(), meta)
	if !errors.Is(err, testErr) {
		t.Errorf("expected error %v, got %v", testErr, err)
	}

	spans := spanRecorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	var fetchError bool
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == "media.error" {
			fetchError = attr.Value.AsBool()
		}
	}
	if !fetchError {
		t.Error("expected media.error=true on failed fetch")
	}

	var rm metricdata.ResourceMetrics
	if err := metricReader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	errMetric := findMetric(rm, "media.fetch.errors")
	if errMetric == nil {
		t.Fatal("media.fetch.errors metric not found")
	}
	sum, ok := errMetric.Data.(metricdata.Sum[int64])
	if ok && len(sum.DataPoints) > 0 && sum.DataPoints[0].Value != 1 {
		t.Errorf("expected errors count 1, got %d", sum.DataPoints[0].Value)
	}
}

// TestInstrument_PropagatesContext verifies context is passed through.
func TestInstrument_PropagatesContext(t *testing.T) {
	in := NewInstrument(newNoopTracer(), &noopMetrics{}, &noopLogger{})

	type ctxKey string
	testKey := ctxKey("test")
	testValue := "test_value"

	var receivedValue any
	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		receivedValue = ctx.Value(testKey)
		return nil, nil
	})

	ctx := context.WithValue(context.Background(), testKey, testValue)
	if _, err := wrapped(ctx, FetchMeta{Key: "vid:abc12345678"}); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	if receivedValue != testValue {
		t.Errorf("expected context value %q, got %v", testValue, receivedValue)
	}
}

// TestInstrument_LogsCompletion verifies the wrapper emits a log entry.
func TestInstrument_LogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	in := NewInstrument(newNoopTracer(), &noopMetrics{}, logger)

	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		return []byte("payload"), nil
	})
	if _, err := wrapped(context.Background(), FetchMeta{Key: "vid:abc12345678"}); err != nil {
		t.Fatalf("wrapped() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "fetch completed") {
		t.Errorf("expected 'fetch completed' log entry, got: %s", output)
	}
	if !strings.Contains(output, "vid:abc12345678") {
		t.Errorf("expected key in log entry, got: %s", output)
	}
}

// TestInstrument_DisabledNoop verifies noop telemetry still executes the fetch.
func TestInstrument_DisabledNoop(t *testing.T) {
	in := NewInstrument(newNoopTracer(), &noopMetrics{}, &noopLogger{})

	want := []byte("noop_result")
	wrapped := in.Wrap(func(ctx context.Context, meta FetchMeta) ([]byte, error) {
		return want, nil
	})

	got, err := wrapped(context.Background(), FetchMeta{Key: "vid:abc12345678"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("result = %q, want %q", got, want)
	}
}

// TestFetchMeta_SpanName verifies span naming with and without a source.
func TestFetchMeta_SpanName(t *testing.T) {
	if got := (FetchMeta{Source: "youtube"}).SpanName(); got != "media.fetch.youtube" {
		t.Errorf("SpanName() = %q, want 'media.fetch.youtube'", got)
	}
	if got := (FetchMeta{}).SpanName(); got != "media.fetch" {
		t.Errorf("SpanName() = %q, want 'media.fetch'", got)
	}
}
