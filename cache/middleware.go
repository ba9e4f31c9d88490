package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// FetchFunc is the signature of the external metadata retriever.
type FetchFunc func(ctx context.Context, locator string) ([]byte, error)

// Guard wraps an upstream call with protective behavior such as retries,
// attempt timeouts, and concurrency caps. Satisfied by *upstream.Guard.
type Guard interface {
	Execute(ctx context.Context, op func(context.Context) error) error
}

// Middleware wraps metadata retrieval with fetch-through caching.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent misses for the same
//     canonical key are coalesced into one upstream fetch.
//   - Errors: upstream errors are propagated unchanged and never cached.
//   - The cache's own lock is never held across an upstream fetch.
type Middleware struct {
	cache Cache
	keyer Keyer
	guard Guard
	group singleflight.Group
}

// NewMiddleware creates a new fetch-through middleware.
// If keyer is nil, NewVideoKeyer() is used; it should be the same keyer the
// underlying store uses so coalescing matches the store's key space.
// Guard may be nil, in which case fetches run unguarded.
func NewMiddleware(c Cache, keyer Keyer, guard Guard) *Middleware {
	if keyer == nil {
		keyer = NewVideoKeyer()
	}
	return &Middleware{
		cache: c,
		keyer: keyer,
		guard: guard,
	}
}

// Fetch returns the cached payload for a locator, or retrieves it upstream
// on a miss and stores the result with the store's default TTL.
func (m *Middleware) Fetch(ctx context.Context, locator string, fetch FetchFunc) ([]byte, error) {
	if m.cache == nil {
		return nil, ErrNilCache
	}
	if err := ValidateLocator(locator); err != nil {
		return nil, err
	}

	if cached, ok := m.cache.Get(ctx, locator); ok {
		return cached, nil
	}

	key := m.keyer.Key(locator)
	v, err, _ := m.group.Do(key, func() (any, error) {
		result, err := m.retrieve(ctx, locator, fetch)
		if err != nil {
			// Don't cache errors
			return nil, err
		}
		_ = m.cache.Set(ctx, locator, result, 0)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (m *Middleware) retrieve(ctx context.Context, locator string, fetch FetchFunc) ([]byte, error) {
	if m.guard == nil {
		return fetch(ctx, locator)
	}

	var result []byte
	err := m.guard.Execute(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = fetch(ctx, locator)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
