package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxLocatorLength is the maximum allowed length for an input locator.
const MaxLocatorLength = 2048

// Sentinel errors for cache operations.
var (
	ErrNilCache       = errors.New("cache: cache is nil")
	ErrInvalidLocator = errors.New("cache: locator is invalid")
	ErrLocatorTooLong = errors.New("cache: locator exceeds max length")
)

// Cache is the interface for caching upstream metadata lookups.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get should never error; it returns (nil, false) on miss or expiry.
// - Absence and expiry are misses, not failures.
type Cache interface {
	// Get retrieves the cached payload for a locator. Returns (nil, false)
	// on miss. An expired entry counts as a miss and is removed.
	Get(ctx context.Context, locator string) ([]byte, bool)

	// Set stores a payload with the given TTL. TTL<=0 falls back to the
	// store's default TTL.
	Set(ctx context.Context, locator string, value []byte, ttl time.Duration) error

	// Invalidate removes the entry for a locator. Returns whether it was
	// present. Never fails.
	Invalidate(ctx context.Context, locator string) bool

	// Clear empties the store and resets hit/miss counters.
	Clear()

	// CleanupExpired removes every expired entry and returns the count
	// removed. Recency order of surviving entries is untouched.
	CleanupExpired() int

	// Stats returns a point-in-time snapshot of the store counters.
	Stats() Stats
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Size          int
	MaxSize       int
	Hits          int64
	Misses        int64
	HitRate       float64 // percentage, 0 when no requests yet
	TotalRequests int64
}

// ValidateLocator checks if a locator is acceptable as cache input.
func ValidateLocator(locator string) error {
	if locator == "" || strings.TrimSpace(locator) == "" {
		return ErrInvalidLocator
	}
	if len(locator) > MaxLocatorLength {
		return ErrLocatorTooLong
	}
	// Reject locators with newlines or carriage returns
	if strings.ContainsAny(locator, "\n\r") {
		return ErrInvalidLocator
	}
	return nil
}
