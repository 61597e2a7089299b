// Package keyring implements the cryptographic primitives for the wallet
// vault: credential-based key derivation, authenticated secret encryption,
// the ledger seed format, and PIN hashing.
package keyring

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// Configuration for Argon2id derivation.
const (
	deriveMemory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	deriveIterations  = 2         // Iteration count
	deriveParallelism = 1         // Number of threads
	deriveKeyLength   = 32        // AES-256 key size
)

// DefaultCredential is the well-known credential used for accounts that have
// never set a PIN. Callers must substitute it explicitly; DeriveKey never
// falls back to it on its own.
const DefaultCredential = "0000"

// DeriveKey turns an (identifier, credential) pair into a 32-byte symmetric
// key. Deterministic: the same inputs always produce the same key. The salt
// is derived from the identifier so two accounts with the same PIN still get
// distinct keys.
func DeriveKey(identifier, credential string) []byte {
	salt := sha256.Sum256([]byte("chillar-vault:" + identifier))
	return argon2.IDKey(
		[]byte(credential),
		salt[:],
		deriveIterations,
		deriveMemory,
		deriveParallelism,
		deriveKeyLength,
	)
}

// DeriveDelegateKey derives the single-factor key a delegation's shared
// secret is encrypted under. The delegate's own identity is the only key
// material, since the delegate never learns the delegator's PIN.
func DeriveDelegateKey(delegateID string) []byte {
	return DeriveKey(delegateID, delegateID)
}
