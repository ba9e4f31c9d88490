package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// Keyer maps an input locator to a canonical cache key.
//
// Contract:
// - Determinism: the same locator must always produce the same key.
// - Purity: no I/O and no clock; determinism is what makes hits possible
//   across differently-formatted but equivalent locators.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key derives the canonical cache key for a locator.
	Key(locator string) string
}

// videoIDPatterns match the known URL shapes that refer to the same
// logical video. Each pattern captures the canonical video ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([\w-]+)`),
	regexp.MustCompile(`youtu\.be/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/v/([\w-]+)`),
}

// VideoKeyer normalizes video locators to canonical cache keys.
//
// Locators recognized as one of the known video URL shapes collapse to a
// shared key derived from the video ID. Anything else gets a fixed-length
// SHA-256 digest of the raw locator text.
type VideoKeyer struct{}

// NewVideoKeyer creates a new video locator keyer.
func NewVideoKeyer() *VideoKeyer {
	return &VideoKeyer{}
}

// Key derives the canonical cache key for a locator.
// Format: vid:<id> for recognized video URLs, loc:<hash> otherwise,
// where hash is the first 16 hex characters of SHA-256(locator).
func (k *VideoKeyer) Key(locator string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(locator); m != nil {
			return "vid:" + m[1]
		}
	}

	sum := sha256.Sum256([]byte(locator))
	return "loc:" + hex.EncodeToString(sum[:8])
}

// Ensure VideoKeyer implements Keyer
var _ Keyer = (*VideoKeyer)(nil)
