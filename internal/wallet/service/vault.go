package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

// VaultService recovers an account's signing seed from its stored
// ciphertext. Recovery is a bounded two-attempt sequence: the expected
// credential first, then the documented default credential for accounts
// whose ciphertext predates their PIN. Both attempts exhausted means the
// vault is locked for this request.
type VaultService struct {
	Store store.Store
}

// ResolveSecret decrypts the account's seed using the entered PIN, or the
// default credential when the account never set one. The decrypted seed is
// validated for shape before being trusted; a decrypt that "succeeds" into
// garbage counts as a failed attempt.
func (s *VaultService) ResolveSecret(ctx context.Context, account domain.Account, enteredPIN string) (string, error) {
	credential := enteredPIN
	if credential == "" {
		if account.HasPIN() {
			// A PIN is on file; an unlock without one never falls back.
			return "", domain.ErrVaultLocked
		}
		credential = keyring.DefaultCredential
	} else if account.HasPIN() {
		if err := keyring.VerifyPIN(enteredPIN, *account.PINHash); err != nil {
			return "", domain.ErrInvalidPIN
		}
	}
	usedEntered := credential != keyring.DefaultCredential

	if seed, ok := s.tryDecrypt(account, credential); ok {
		return seed, nil
	}

	// Legacy drift: the account set a PIN but its ciphertext was never
	// rekeyed. One retry with the default credential, never more.
	if usedEntered {
		if seed, ok := s.tryDecrypt(account, keyring.DefaultCredential); ok {
			return seed, nil
		}
	}

	return "", domain.ErrVaultLocked
}

func (s *VaultService) tryDecrypt(account domain.Account, credential string) (string, bool) {
	key := keyring.DeriveKey(account.Identity, credential)
	plaintext, err := keyring.Decrypt(account.EncryptedSecret, key)
	if err != nil {
		return "", false
	}
	seed := string(plaintext)
	if !keyring.ValidSeed(seed) {
		return "", false
	}
	return seed, true
}

// Rekey re-encrypts the account's seed under a new PIN and persists the new
// ciphertext together with the new PIN hash in one transaction. On any
// failure the stored ciphertext is untouched and the old PIN keeps working.
func (s *VaultService) Rekey(ctx context.Context, account domain.Account, oldPIN, newPIN string) error {
	if !keyring.ValidPIN(newPIN) {
		return domain.ErrInvalidPIN
	}

	seed, err := s.ResolveSecret(ctx, account, oldPIN)
	if err != nil {
		return err
	}

	newKey := keyring.DeriveKey(account.Identity, newPIN)
	ciphertext, err := keyring.Encrypt([]byte(seed), newKey)
	if err != nil {
		return fmt.Errorf("encrypt seed: %w", err)
	}

	hash, err := keyring.HashPIN(newPIN)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().UpdateEncryptedSecret(ctx, account.ID, ciphertext, &hash)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("persist rekeyed secret: %w", err)
	}
	return nil
}
