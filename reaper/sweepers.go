package reaper

import (
	"context"

	"github.com/avelis/clipgate/cache"
	"github.com/avelis/clipgate/session"
)

// CacheSweeper returns a Sweeper that removes expired entries from a cache.
func CacheSweeper(c cache.Cache) Sweeper {
	return SweeperFunc{
		SweepName: "cache",
		Fn: func(ctx context.Context) (int, error) {
			return c.CleanupExpired(), nil
		},
	}
}

// SessionSweeper returns a Sweeper that removes stale sessions.
func SessionSweeper(s *session.Store) Sweeper {
	return SweeperFunc{
		SweepName: "sessions",
		Fn: func(ctx context.Context) (int, error) {
			return s.CleanupStale(), nil
		},
	}
}
