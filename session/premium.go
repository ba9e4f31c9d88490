package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Entitlement is the payload of a verified premium pass.
type Entitlement struct {
	// Subject is the principal the pass was issued to.
	Subject string

	// Premium reports whether the pass grants premium standing.
	Premium bool

	// ExpiresAt is when the pass stops being valid. Zero if the pass
	// carries no expiry.
	ExpiresAt time.Time
}

// PassVerifierConfig configures a PassVerifier.
type PassVerifierConfig struct {
	// Key is the HMAC signing key premium passes are issued with.
	Key []byte

	// Issuer is the expected iss claim. Empty disables the check.
	Issuer string

	// PremiumClaim is the claim carrying the entitlement flag.
	// Default: "premium"
	PremiumClaim string
}

// PassVerifier validates signed premium passes.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: returns the package sentinel errors; never panics on bad input.
type PassVerifier struct {
	config PassVerifierConfig
}

// NewPassVerifier creates a premium pass verifier.
func NewPassVerifier(config PassVerifierConfig) *PassVerifier {
	// Apply defaults
	if config.PremiumClaim == "" {
		config.PremiumClaim = "premium"
	}

	return &PassVerifier{config: config}
}

// Verify parses and validates a pass, returning its entitlement.
func (v *PassVerifier) Verify(tokenString string) (Entitlement, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return v.config.Key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Entitlement{}, ErrPassExpired
		}
		return Entitlement{}, ErrPassMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Entitlement{}, ErrPassMalformed
	}

	ent := Entitlement{}
	if sub, err := claims.GetSubject(); err == nil {
		ent.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ent.ExpiresAt = exp.Time
	}
	if premium, ok := claims[v.config.PremiumClaim].(bool); ok {
		ent.Premium = premium
	}

	if !ent.Premium {
		return ent, ErrNotPremium
	}
	return ent, nil
}
