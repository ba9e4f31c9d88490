// Package session tracks per-client usage for fair-use limits and the
// engagement-gated delay policy.
//
// Clients are correlated by a deterministic digest of connection-level
// attributes rather than by login. The Store owns the daily download
// quota, the ad-engagement bypass window, and the premium override, and
// is safe for concurrent use. Premium status is granted by redeeming a
// signed premium pass against the store.
package session
