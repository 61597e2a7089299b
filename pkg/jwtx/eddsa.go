package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed session tokens.
type Signer interface {
	KID() string
	Sign(Claims) (string, error)
}

// Verifier validates a session token and returns its claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Keypair is an in-memory Ed25519 signing keypair. Session tokens are
// deliberately ephemeral: a restart invalidates outstanding sessions, which
// for a wallet is the safe direction to fail.
type Keypair struct {
	kid    string
	key    ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
}

// NewKeypair generates a fresh Ed25519 keypair for session signing.
func NewKeypair(kid, issuer string) (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to generate Ed25519 key: %w", err)
	}
	return &Keypair{kid: kid, key: priv, pub: pub, issuer: issuer}, nil
}

func (k *Keypair) KID() string { return k.kid }

// Sign turns claims into a signed JWT string.
func (k *Keypair) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = k.kid
	return t.SignedString(k.key)
}

// Verify validates the JWT string and returns its parsed Claims.
func (k *Keypair) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != k.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return k.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("jwtx: parse failed: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(k.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// Ready reports whether the keypair holds usable key material.
func (k *Keypair) Ready() bool {
	return len(k.key) == ed25519.PrivateKeySize && len(k.pub) == ed25519.PublicKeySize
}
