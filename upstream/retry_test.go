package upstream

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	retry := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
	ctx := context.Background()

	calls := 0
	err := retry.Execute(ctx, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_RecoversAfterFailures(t *testing.T) {
	retry := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
	ctx := context.Background()

	calls := 0
	err := retry.Execute(ctx, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("extraction blocked")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ReturnsLastError(t *testing.T) {
	retry := NewRetry(RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond})
	ctx := context.Background()

	lastErr := errors.New("still blocked")
	calls := 0
	err := retry.Execute(ctx, func(ctx context.Context) error {
		calls++
		return lastErr
	})
	if !errors.Is(err, lastErr) {
		t.Errorf("Execute error = %v, want %v", err, lastErr)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetry_RetryIfStopsEarly(t *testing.T) {
	permanent := errors.New("video is private")
	retry := NewRetry(RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		RetryIf:      func(err error) bool { return !errors.Is(err, permanent) },
	})
	ctx := context.Background()

	calls := 0
	err := retry.Execute(ctx, func(ctx context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Execute error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a non-retryable error", calls)
	}
}

func TestRetry_OnRetryRotatesStrategies(t *testing.T) {
	ctx := context.Background()

	strategies := []string{"basic", "android", "ios"}
	current := 0
	var used []string

	retry := NewRetry(RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			current++
		},
	})

	_ = retry.Execute(ctx, func(ctx context.Context) error {
		used = append(used, strategies[current])
		return errors.New("blocked")
	})

	want := []string{"basic", "android", "ios"}
	if len(used) != len(want) {
		t.Fatalf("attempts = %v, want %v", used, want)
	}
	for i := range want {
		if used[i] != want[i] {
			t.Errorf("attempt %d used %q, want %q", i, used[i], want[i])
		}
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	retry := NewRetry(RetryConfig{MaxAttempts: 10, InitialDelay: 50 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := retry.Execute(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("blocked")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 before cancellation", calls)
	}
}

func TestRetry_Defaults(t *testing.T) {
	retry := NewRetry(RetryConfig{})

	if retry.config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", retry.config.MaxAttempts)
	}
	if retry.config.InitialDelay != 100*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 100ms", retry.config.InitialDelay)
	}
	if retry.config.Multiplier != 2.0 {
		t.Errorf("Multiplier = %v, want 2.0", retry.config.Multiplier)
	}
}

func TestRetry_BackoffGrowsAndCaps(t *testing.T) {
	retry := NewRetry(RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   2.0,
	})

	if d := retry.delayFor(1); d != 100*time.Millisecond {
		t.Errorf("delayFor(1) = %v, want 100ms", d)
	}
	if d := retry.delayFor(2); d != 200*time.Millisecond {
		t.Errorf("delayFor(2) = %v, want 200ms", d)
	}
	if d := retry.delayFor(3); d != 300*time.Millisecond {
		t.Errorf("delayFor(3) = %v, want capped 300ms", d)
	}
}
