package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// Resolver maps connection-level attributes to a stable session identity.
//
// Contract:
// - Determinism: identical inputs must always yield the same identity.
// - Purity: no I/O and no clock.
// - Concurrency: implementations must be safe for concurrent use.
type Resolver interface {
	// Identify derives the session identity for a client.
	Identify(clientAddr, userAgent string) string
}

// DigestResolver derives identities by hashing client address and
// user-agent string together.
//
// This is a heuristic identity, not a strong one: distinct clients that
// share both address and user-agent (behind one proxy or NAT) collide.
// That limitation is accepted here; hardening belongs to the embedding
// server.
type DigestResolver struct{}

// NewDigestResolver creates a new digest-based identity resolver.
func NewDigestResolver() *DigestResolver {
	return &DigestResolver{}
}

// Identify returns the hex SHA-256 digest of addr and user-agent.
func (r *DigestResolver) Identify(clientAddr, userAgent string) string {
	sum := sha256.Sum256([]byte(clientAddr + "_" + userAgent))
	return hex.EncodeToString(sum[:])
}

// Ensure DigestResolver implements Resolver
var _ Resolver = (*DigestResolver)(nil)
