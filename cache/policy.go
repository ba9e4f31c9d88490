package cache

import "time"

// Policy configures cache capacity and TTL behavior.
type Policy struct {
	// MaxEntries is the maximum number of entries the store holds.
	// If zero, DefaultMaxEntries is used.
	MaxEntries int

	// DefaultTTL is the TTL applied when Set is called without one.
	// If zero, caching is disabled by default.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultMaxEntries is the capacity used when Policy.MaxEntries is zero.
const DefaultMaxEntries = 100

// DefaultPolicy returns the default cache policy.
// MaxEntries: 100, DefaultTTL: 5 minutes, MaxTTL: 1 hour
func DefaultPolicy() Policy {
	return Policy{
		MaxEntries: DefaultMaxEntries,
		DefaultTTL: 5 * time.Minute,
		MaxTTL:     1 * time.Hour,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}

// Capacity returns the entry cap, substituting the default for zero.
func (p Policy) Capacity() int {
	if p.MaxEntries <= 0 {
		return DefaultMaxEntries
	}
	return p.MaxEntries
}
