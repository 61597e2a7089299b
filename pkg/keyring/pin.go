package keyring

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/argon2"
)

const (
	pinSaltLength = 16
	// PINLength is the required credential length.
	PINLength = 4
)

// ErrPINMismatch is returned when a PIN does not match its stored hash.
var ErrPINMismatch = errors.New("keyring: pin does not match")

// ValidPIN reports whether pin is a well-formed 4-digit credential.
func ValidPIN(pin string) bool {
	if len(pin) != PINLength {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// GeneratePIN returns a random 4-digit PIN.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("keyring: failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// HashPIN generates a PHC-format Argon2id hash string including salt and
// parameters. The PIN itself is never persisted; only this hash is.
func HashPIN(pin string) (string, error) {
	salt := make([]byte, pinSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(pin),
		salt,
		deriveIterations,
		deriveMemory,
		deriveParallelism,
		deriveKeyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		deriveMemory,
		deriveIterations,
		deriveParallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPIN compares a PIN against a PHC-style Argon2id hash in constant
// time. Returns ErrPINMismatch on failure.
func VerifyPIN(pin, encodedHash string) error {
	parts := splitPHC(encodedHash)

	// Expected structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 {
		return errors.New("keyring: invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("keyring: invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("keyring: invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("keyring: invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("keyring: invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("keyring: invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(pin),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - hash length is bounded
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPINMismatch
}

func splitPHC(s string) []string {
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(s) {
		if s[i] == '$' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
