package reaper

import (
	"context"
	"testing"
	"time"

	"github.com/avelis/clipgate/cache"
	"github.com/avelis/clipgate/session"
)

func TestCacheSweeper_RemovesExpiredEntries(t *testing.T) {
	ctx := context.Background()
	store := cache.NewStore(cache.StoreConfig{})

	if err := store.Set(ctx, "https://youtu.be/dQw4w9WgXcQ", []byte("meta"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	s := CacheSweeper(store)
	if s.Name() != "cache" {
		t.Errorf("Name() = %q, want %q", s.Name(), "cache")
	}

	removed, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Sweep removed = %d, want 1", removed)
	}
}

func TestSessionSweeper_FreshSessionsSurvive(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(session.Config{})
	store.GetOrCreate("203.0.113.7", "test-agent")

	s := SessionSweeper(store)
	if s.Name() != "sessions" {
		t.Errorf("Name() = %q, want %q", s.Name(), "sessions")
	}

	removed, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Sweep removed = %d, want 0 for fresh sessions", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}
