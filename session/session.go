package session

import "time"

// Session is the per-identity usage record.
//
// Store methods return Session by value; mutating a returned Session has
// no effect on the store.
type Session struct {
	// ID is the stable identity string derived by a Resolver.
	ID string

	// CreatedAt is when the identity was first seen.
	CreatedAt time.Time

	// LastSeen is updated on every GetOrCreate for this identity.
	LastSeen time.Time

	// DownloadCount is the lifetime download counter.
	DownloadCount int64

	// FetchCount is the lifetime metadata-fetch counter.
	FetchCount int64

	// DailyDownloads counts downloads in the current rolling window.
	DailyDownloads int

	// LastReset anchors the rolling daily window.
	LastReset time.Time

	// Premium sessions skip delays and quota entirely.
	Premium bool

	// AdViews counts ad engagements toward the bypass threshold.
	AdViews int

	// BypassUntil is the end of the ad-engagement bypass window.
	// Zero when no bypass window has been granted.
	BypassUntil time.Time
}

// BypassActive reports whether the ad-engagement bypass window covers now.
func (s Session) BypassActive(now time.Time) bool {
	return !s.BypassUntil.IsZero() && now.Before(s.BypassUntil)
}

// RateLimitStatus describes an identity's standing against the daily quota.
type RateLimitStatus struct {
	// Limited is true when the daily quota is exhausted.
	Limited bool

	// Remaining is the number of downloads left in the window.
	Remaining int

	// ResetAt is when the window rolls over. Zero for unknown identities
	// and premium sessions, which have no meaningful window.
	ResetAt time.Time
}
