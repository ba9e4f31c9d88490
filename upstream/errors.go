package upstream

import "errors"

// Sentinel errors for guarded fetches.
var (
	// ErrCircuitOpen is returned while the breaker is rejecting fetches.
	ErrCircuitOpen = errors.New("upstream: circuit breaker is open")

	// ErrTooManyFetches is returned when no fetch slot frees up in time.
	ErrTooManyFetches = errors.New("upstream: too many concurrent fetches")

	// ErrFetchTimeout is returned when a single fetch attempt exceeds its
	// time limit.
	ErrFetchTimeout = errors.New("upstream: fetch attempt timed out")
)
