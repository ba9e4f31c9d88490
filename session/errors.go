package session

import "errors"

// Sentinel errors for premium pass verification.
var (
	// ErrPassMalformed indicates the pass could not be parsed or its
	// signature did not verify.
	ErrPassMalformed = errors.New("session: premium pass is malformed")

	// ErrPassExpired indicates the pass was valid but has expired.
	ErrPassExpired = errors.New("session: premium pass has expired")

	// ErrNotPremium indicates a verified pass that carries no premium
	// entitlement.
	ErrNotPremium = errors.New("session: pass carries no premium entitlement")
)
