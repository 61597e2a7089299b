package keyring

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
)

// Ledger seed / address format. A raw signing secret is a 32-byte Ed25519
// seed; the wire form is a sentinel prefix character followed by unpadded
// base32. The sentinel and fixed length let the vault distinguish a correct
// decryption from garbage produced by the wrong key.
const (
	// SeedPrefix is the sentinel prefix of an encoded signing seed.
	SeedPrefix = 'S'
	// AddressPrefix is the sentinel prefix of an encoded public address.
	AddressPrefix = 'C'
	// SeedLength is the fixed length of an encoded seed (1 + 52 base32 chars).
	SeedLength = 53
)

var seedEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ErrBadSeed reports a value that is not a well-formed signing seed.
var ErrBadSeed = errors.New("keyring: malformed signing seed")

// GenerateSeed creates a fresh random signing seed in encoded form.
func GenerateSeed() (string, error) {
	raw := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("keyring: failed to generate seed: %w", err)
	}
	return string(SeedPrefix) + seedEncoding.EncodeToString(raw), nil
}

// ValidSeed reports whether s is a well-formed encoded signing seed: fixed
// length, sentinel prefix, and a decodable 32-byte payload.
func ValidSeed(s string) bool {
	if len(s) != SeedLength || s[0] != SeedPrefix {
		return false
	}
	raw, err := seedEncoding.DecodeString(s[1:])
	if err != nil {
		return false
	}
	return len(raw) == ed25519.SeedSize
}

// SeedBytes decodes an encoded seed to its raw 32-byte form.
func SeedBytes(s string) ([]byte, error) {
	if !ValidSeed(s) {
		return nil, ErrBadSeed
	}
	raw, err := seedEncoding.DecodeString(s[1:])
	if err != nil {
		return nil, ErrBadSeed
	}
	return raw, nil
}

// PublicAddress derives the ledger public address for a signing seed.
func PublicAddress(seed string) (string, error) {
	raw, err := SeedBytes(seed)
	if err != nil {
		return "", err
	}
	pub := ed25519.NewKeyFromSeed(raw).Public().(ed25519.PublicKey)
	return string(AddressPrefix) + seedEncoding.EncodeToString(pub), nil
}

// Sign signs message with the key derived from an encoded seed.
func Sign(seed string, message []byte) ([]byte, error) {
	raw, err := SeedBytes(seed)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(raw), message), nil
}

// VerifySignature checks a signature produced by Sign against a public
// address. Payout verifiers use this to re-validate payment proofs.
func VerifySignature(address string, message, sig []byte) bool {
	if len(address) == 0 || address[0] != AddressPrefix {
		return false
	}
	pub, err := seedEncoding.DecodeString(address[1:])
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig)
}
