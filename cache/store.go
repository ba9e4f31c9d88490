package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Recorder receives cache events for telemetry.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic; recording is best-effort.
type Recorder interface {
	// RecordLookup records a cache lookup and whether it hit.
	RecordLookup(ctx context.Context, hit bool)

	// RecordEviction records an entry removal. Cause is "capacity" or
	// "expired".
	RecordEviction(ctx context.Context, cause string)
}

// noopRecorder is a recorder that does nothing.
type noopRecorder struct{}

func (noopRecorder) RecordLookup(ctx context.Context, hit bool)      {}
func (noopRecorder) RecordEviction(ctx context.Context, cause string) {}

// StoreConfig configures a Store.
type StoreConfig struct {
	// Policy sets capacity and TTL behavior.
	// Zero-value fields fall back to DefaultPolicy equivalents.
	Policy Policy

	// Keyer normalizes locators to cache keys.
	// Default: NewVideoKeyer()
	Keyer Keyer

	// Recorder receives lookup/eviction events.
	// Default: no-op
	Recorder Recorder
}

// entry is a cached payload with its expiry bookkeeping.
type entry struct {
	key       string
	value     []byte
	createdAt time.Time
	expiresAt time.Time
	locator   string // original input, kept for diagnostics
}

// Store is a bounded in-memory TTL/LRU cache.
//
// All operations serialize on a single store-wide lock; no operation
// performs blocking I/O while holding it. Eviction is purely recency
// based: an entry with a long remaining TTL can be evicted ahead of one
// close to expiring if the latter was touched more recently.
type Store struct {
	policy   Policy
	keyer    Keyer
	recorder Recorder

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
	hits    int64
	misses  int64

	now func() time.Time
}

// NewStore creates a new TTL/LRU store.
func NewStore(config StoreConfig) *Store {
	// Apply defaults
	if config.Keyer == nil {
		config.Keyer = NewVideoKeyer()
	}
	if config.Recorder == nil {
		config.Recorder = noopRecorder{}
	}

	return &Store{
		policy:   config.Policy,
		keyer:    config.Keyer,
		recorder: config.Recorder,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get retrieves the cached payload for a locator. A present-but-expired
// entry is removed and counted as a miss.
func (s *Store) Get(ctx context.Context, locator string) ([]byte, bool) {
	key := s.keyer.Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		s.misses++
		s.recorder.RecordLookup(ctx, false)
		return nil, false
	}

	e := el.Value.(*entry)
	if !s.now().Before(e.expiresAt) {
		s.removeLocked(el)
		s.misses++
		s.recorder.RecordEviction(ctx, "expired")
		s.recorder.RecordLookup(ctx, false)
		return nil, false
	}

	s.order.MoveToFront(el)
	s.hits++
	s.recorder.RecordLookup(ctx, true)
	return e.value, true
}

// Set stores a payload for a locator, marking it most recently used.
// TTL<=0 uses the policy default; the result is clamped to the policy max.
// After insertion the least-recently-used entries are evicted until the
// store is within capacity.
func (s *Store) Set(ctx context.Context, locator string, value []byte, ttl time.Duration) error {
	effective := s.policy.EffectiveTTL(ttl)
	if effective <= 0 {
		// Caching disabled by policy
		return nil
	}
	key := s.keyer.Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := &entry{
		key:       key,
		value:     value,
		createdAt: now,
		expiresAt: now.Add(effective),
		locator:   locator,
	}

	if el, ok := s.entries[key]; ok {
		el.Value = e
		s.order.MoveToFront(el)
	} else {
		s.entries[key] = s.order.PushFront(e)
	}

	for s.order.Len() > s.policy.Capacity() {
		s.removeLocked(s.order.Back())
		s.recorder.RecordEviction(ctx, "capacity")
	}

	return nil
}

// Invalidate removes the entry for a locator. Returns whether it was
// present. Never fails.
func (s *Store) Invalidate(ctx context.Context, locator string) bool {
	key := s.keyer.Key(locator)

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return false
	}
	s.removeLocked(el)
	return true
}

// Clear empties the store and resets hit/miss counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*list.Element)
	s.order.Init()
	s.hits = 0
	s.misses = 0
}

// CleanupExpired removes every entry whose expiry has passed and returns
// the count removed. Surviving entries keep their recency order.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if !now.Before(el.Value.(*entry).expiresAt) {
			s.removeLocked(el)
			removed++
		}
		el = next
	}
	return removed
}

// Stats returns a snapshot of the store counters.
// HitRate is a percentage, 0 when no requests have been made yet.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.hits + s.misses
	rate := 0.0
	if total > 0 {
		rate = float64(s.hits) / float64(total) * 100
	}

	return Stats{
		Size:          s.order.Len(),
		MaxSize:       s.policy.Capacity(),
		Hits:          s.hits,
		Misses:        s.misses,
		HitRate:       rate,
		TotalRequests: total,
	}
}

func (s *Store) removeLocked(el *list.Element) {
	e := el.Value.(*entry)
	s.order.Remove(el)
	delete(s.entries, e.key)
}

// Ensure Store implements Cache
var _ Cache = (*Store)(nil)
