package health

import (
	"context"
	"fmt"

	"github.com/avelis/clipgate/cache"
	"github.com/avelis/clipgate/session"
)

// DefaultSessionSoftCap is the session count above which the session
// checker reports degraded.
const DefaultSessionSoftCap = 10000

// CacheChecker reports the health of a cache store. A full cache still
// serves reads but evicts on every insert, so it is reported as degraded.
type CacheChecker struct {
	cache cache.Cache
}

// NewCacheChecker creates a checker over the given cache.
func NewCacheChecker(c cache.Cache) *CacheChecker {
	return &CacheChecker{cache: c}
}

func (c *CacheChecker) Name() string {
	return "cache"
}

func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.cache == nil {
		return Unhealthy("cache is not configured", cache.ErrNilCache)
	}

	stats := c.cache.Stats()
	details := map[string]any{
		"size":           stats.Size,
		"max_size":       stats.MaxSize,
		"hits":           stats.Hits,
		"misses":         stats.Misses,
		"hit_rate":       stats.HitRate,
		"total_requests": stats.TotalRequests,
	}

	if stats.MaxSize > 0 && stats.Size >= stats.MaxSize {
		msg := fmt.Sprintf("cache at capacity (%d/%d)", stats.Size, stats.MaxSize)
		return Degraded(msg).WithDetails(details)
	}

	return Healthy("cache operational").WithDetails(details)
}

// SessionChecker reports the health of a session store. Session growth is
// bounded only by the stale reaper, so a count above the soft cap usually
// means the reaper has stalled.
type SessionChecker struct {
	store   *session.Store
	softCap int
}

// NewSessionChecker creates a checker over the given session store.
// A softCap of 0 uses DefaultSessionSoftCap.
func NewSessionChecker(store *session.Store, softCap int) *SessionChecker {
	if softCap <= 0 {
		softCap = DefaultSessionSoftCap
	}
	return &SessionChecker{store: store, softCap: softCap}
}

func (c *SessionChecker) Name() string {
	return "sessions"
}

func (c *SessionChecker) Check(ctx context.Context) Result {
	if c.store == nil {
		return Unhealthy("session store is not configured", nil)
	}

	count := c.store.Len()
	details := map[string]any{
		"sessions": count,
		"soft_cap": c.softCap,
	}

	if count >= c.softCap {
		msg := fmt.Sprintf("session count %d exceeds soft cap %d", count, c.softCap)
		return Degraded(msg).WithDetails(details)
	}

	return Healthy("session store operational").WithDetails(details)
}

var (
	_ Checker = (*CacheChecker)(nil)
	_ Checker = (*SessionChecker)(nil)
)
