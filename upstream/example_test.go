package upstream_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelis/clipgate/upstream"
)

func ExampleGuard_Execute() {
	guard := upstream.NewGuard(upstream.GuardConfig{
		MaxConcurrent:  2,
		AttemptTimeout: time.Second,
	})

	err := guard.Execute(context.Background(), func(ctx context.Context) error {
		fmt.Println("fetching metadata")
		return nil
	})
	if err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// fetching metadata
}

func ExampleRetry_Execute() {
	// Rotate extraction strategies between attempts
	strategies := []string{"basic", "android", "ios"}
	current := 0

	retry := upstream.NewRetry(upstream.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			current++
		},
	})

	err := retry.Execute(context.Background(), func(ctx context.Context) error {
		fmt.Println("attempt with strategy:", strategies[current])
		if current < 2 {
			return errors.New("extraction blocked")
		}
		return nil
	})
	fmt.Println("err:", err)
	// Output:
	// attempt with strategy: basic
	// attempt with strategy: android
	// attempt with strategy: ios
	// err: <nil>
}

func ExampleBreaker_Execute() {
	breaker := upstream.NewBreaker(upstream.BreakerConfig{
		MaxFailures:  2,
		ResetTimeout: time.Minute,
	})

	flaky := func(ctx context.Context) error {
		return errors.New("upstream unreachable")
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := breaker.Execute(ctx, flaky)
		if errors.Is(err, upstream.ErrCircuitOpen) {
			fmt.Println("circuit open, fetch rejected")
		} else {
			fmt.Println("fetch failed:", err)
		}
	}
	// Output:
	// fetch failed: upstream unreachable
	// fetch failed: upstream unreachable
	// circuit open, fetch rejected
}
