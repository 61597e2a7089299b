// Package jwtx mints and verifies the short-lived EdDSA session tokens a
// wallet client holds between unlocking the vault and issuing payments.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for wallet session tokens.
// Short-lived on purpose: a stolen session token should not be worth much.
const DefaultSessionTTL = 15 * time.Minute

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Claims are wallet session claims. Subject is the account ID.
type Claims struct {
	jwt.RegisteredClaims

	// Identity is the phone handle the session was unlocked for.
	Identity string `json:"identity,omitempty"`

	// AMR records how the session was established, for audit trails:
	//	"pin": PIN verified against the stored hash
	//	"otp": device TOTP assertion
	//	"default": account still on the default credential, no factor checked
	AMR []string `json:"amr,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for an unlocked wallet
// session.
func NewSessionClaims(accountID, identity string, amr []string, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Identity: identity,
		AMR:      amr,
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
