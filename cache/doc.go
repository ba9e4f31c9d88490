// Package cache provides the bounded TTL/LRU metadata cache that fronts
// the upstream media retriever.
//
// It provides a Cache interface with an LRU Store implementation, locator
// normalization that collapses equivalent video URLs to a single key, TTL
// policies, and a fetch-through middleware that coalesces concurrent misses
// for the same key.
package cache
