package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrDecryptFailed is returned when a ciphertext cannot be decrypted with the
// given key, either because the key is wrong or the ciphertext is malformed.
// Callers attempting multiple candidate keys match on this error rather than
// crashing.
var ErrDecryptFailed = errors.New("keyring: decryption failed")

// Encrypt seals plaintext under key using AES-256-GCM.
// The output format is: [12-byte nonce][encrypted data][16-byte auth tag]
// with a fresh random nonce per call.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keyring: failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keyring: failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("keyring: failed to generate nonce: %w", err)
	}

	// gcm.Seal appends the ciphertext and auth tag to the nonce
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt. It is failure-safe: any malformed
// input or wrong key yields ErrDecryptFailed, never a panic, so the vault can
// try candidate keys in turn.
func Decrypt(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrDecryptFailed
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	return plaintext, nil
}
