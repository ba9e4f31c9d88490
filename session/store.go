package session

import (
	"sync"
	"time"
)

// dailyWindow is the rolling window for quota resets.
const dailyWindow = 24 * time.Hour

// premiumRemaining is the quota reported for premium sessions.
const premiumRemaining = 999

// Config configures a Store.
type Config struct {
	// DailyQuota is the number of downloads allowed per rolling day.
	// Default: 10
	DailyQuota int

	// StaleAge is how long an untouched session survives before the
	// reaper may remove it.
	// Default: 24h
	StaleAge time.Duration

	// BypassThreshold is the ad-view count that grants a bypass window.
	// Default: 3
	BypassThreshold int

	// BypassWindow is how long a granted bypass lasts.
	// Default: 30m
	BypassWindow time.Duration

	// Resolver derives identities from connection attributes.
	// Default: NewDigestResolver()
	Resolver Resolver
}

// Store holds per-identity sessions and owns the rate-limit and
// delay-gate decisions.
//
// All operations serialize on a single store-wide lock; none performs
// blocking I/O while holding it. Unknown identities never produce errors,
// only the documented default returns.
type Store struct {
	config Config

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewStore creates a session store.
func NewStore(config Config) *Store {
	// Apply defaults
	if config.DailyQuota <= 0 {
		config.DailyQuota = 10
	}
	if config.StaleAge <= 0 {
		config.StaleAge = 24 * time.Hour
	}
	if config.BypassThreshold <= 0 {
		config.BypassThreshold = 3
	}
	if config.BypassWindow <= 0 {
		config.BypassWindow = 30 * time.Minute
	}
	if config.Resolver == nil {
		config.Resolver = NewDigestResolver()
	}

	return &Store{
		config:   config,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrCreate resolves the client identity and returns its session,
// creating one on first contact. For known identities it updates LastSeen
// and rolls the daily window over when more than 24 hours have elapsed
// since the last reset.
func (s *Store) GetOrCreate(clientAddr, userAgent string) Session {
	id := s.config.Resolver.Identify(clientAddr, userAgent)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:        id,
			CreatedAt: now,
			LastSeen:  now,
			LastReset: now,
		}
		s.sessions[id] = sess
		return *sess
	}

	sess.LastSeen = now
	if now.Sub(sess.LastReset) > dailyWindow {
		sess.DailyDownloads = 0
		sess.LastReset = now
	}
	return *sess
}

// IncrementDownload bumps the lifetime and daily download counters.
// No-op for unknown identities.
func (s *Store) IncrementDownload(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.DownloadCount++
		sess.DailyDownloads++
	}
}

// IncrementFetch bumps the lifetime metadata-fetch counter.
// No-op for unknown identities.
func (s *Store) IncrementFetch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.FetchCount++
	}
}

// IncrementAdView bumps the ad-view counter. Once the counter is at or
// past the threshold, a fresh bypass window is granted; the check runs on
// every call past the threshold, so each further ad view extends the
// window from now.
func (s *Store) IncrementAdView(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}

	sess.AdViews++
	if sess.AdViews >= s.config.BypassThreshold {
		sess.BypassUntil = s.now().Add(s.config.BypassWindow)
	}
}

// ShouldShowDelay reports whether the delay gate applies to an identity.
// Unknown identities get the restrictive default (true). Premium sessions
// never see delays. An expired bypass window is cleared as a side effect.
func (s *Store) ShouldShowDelay(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return true
	}

	if sess.Premium {
		return false
	}

	if !sess.BypassUntil.IsZero() {
		if s.now().Before(sess.BypassUntil) {
			return false
		}
		// Bypass expired
		sess.BypassUntil = time.Time{}
	}

	return true
}

// RateLimitStatus reports an identity's standing against the daily quota.
// Unknown identities get the permissive default: not limited, full quota.
// This deliberately differs from ShouldShowDelay's restrictive default.
func (s *Store) RateLimitStatus(id string) RateLimitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return RateLimitStatus{Remaining: s.config.DailyQuota}
	}

	if sess.Premium {
		return RateLimitStatus{Remaining: premiumRemaining}
	}

	remaining := s.config.DailyQuota - sess.DailyDownloads
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitStatus{
		Limited:   remaining <= 0,
		Remaining: remaining,
		ResetAt:   sess.LastReset.Add(dailyWindow),
	}
}

// SetPremium marks a session premium (or revokes it). Returns whether the
// identity was known.
func (s *Store) SetPremium(id string, premium bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Premium = premium
	return true
}

// Redeem applies a verified premium entitlement to a session. Returns
// whether the identity was known.
func (s *Store) Redeem(id string, ent Entitlement) bool {
	if !ent.Premium {
		return false
	}
	return s.SetPremium(id, true)
}

// CleanupStale removes every session whose LastSeen is older than the
// configured stale age and returns the count removed.
func (s *Store) CleanupStale() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.config.StaleAge)
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
