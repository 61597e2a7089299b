package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/idx"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

var (
	ErrIdentityTaken   = errors.New("identity already registered")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountService handles onboarding and account-level settings. Onboarding
// generates a fresh signing seed, derives the public and savings addresses
// from it, and stores only the ciphertext.
type AccountService struct {
	Store store.Store
	Vault *VaultService
}

// Onboard creates a wallet account for a phone identity. When pin is empty
// the seed is encrypted under the default credential; the account then runs
// in the documented degraded-security mode until a PIN is set.
func (s *AccountService) Onboard(ctx context.Context, identity, pin string, dailyLimit int64) (domain.Account, error) {
	if identity == "" {
		return domain.Account{}, errors.New("identity is required")
	}
	if pin != "" && !keyring.ValidPIN(pin) {
		return domain.Account{}, domain.ErrInvalidPIN
	}
	if dailyLimit < 0 {
		return domain.Account{}, errors.New("daily limit must not be negative")
	}

	seed, err := keyring.GenerateSeed()
	if err != nil {
		return domain.Account{}, fmt.Errorf("generate seed: %w", err)
	}

	address, err := keyring.PublicAddress(seed)
	if err != nil {
		return domain.Account{}, fmt.Errorf("derive address: %w", err)
	}

	// The savings pot is its own ledger account with its own seed. Only
	// its address is retained; deposits need no signature from our side.
	savingsSeed, err := keyring.GenerateSeed()
	if err != nil {
		return domain.Account{}, fmt.Errorf("generate savings seed: %w", err)
	}
	savingsAddress, err := keyring.PublicAddress(savingsSeed)
	if err != nil {
		return domain.Account{}, fmt.Errorf("derive savings address: %w", err)
	}

	credential := pin
	var pinHash *string
	if pin == "" {
		credential = keyring.DefaultCredential
	} else {
		hash, err := keyring.HashPIN(pin)
		if err != nil {
			return domain.Account{}, fmt.Errorf("hash pin: %w", err)
		}
		pinHash = &hash
	}

	ciphertext, err := keyring.Encrypt([]byte(seed), keyring.DeriveKey(identity, credential))
	if err != nil {
		return domain.Account{}, fmt.Errorf("encrypt seed: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:              idx.New().String(),
		Identity:        identity,
		PublicAddress:   address,
		SavingsAddress:  savingsAddress,
		EncryptedSecret: ciphertext,
		PINHash:         pinHash,
		SpendLimit:      domain.SpendLimit{DailyLimit: dailyLimit},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Accounts().Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrIdentityTaken
		}
		return domain.Account{}, fmt.Errorf("persist account: %w", err)
	}
	return account, nil
}

// Get fetches an account by id.
func (s *AccountService) Get(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	return account, err
}

// GetByIdentity fetches an account by its phone identity.
func (s *AccountService) GetByIdentity(ctx context.Context, identity string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetByIdentity(ctx, identity)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	return account, err
}

// ChangePIN rekeys the vault onto a new PIN. oldPIN is empty for accounts
// still on the default credential.
func (s *AccountService) ChangePIN(ctx context.Context, accountID, oldPIN, newPIN string) error {
	account, err := s.Get(ctx, accountID)
	if err != nil {
		return err
	}
	return s.Vault.Rekey(ctx, account, oldPIN, newPIN)
}

// SetDailyLimit updates the account's own spend ceiling. Zero removes it.
func (s *AccountService) SetDailyLimit(ctx context.Context, accountID string, limit int64) error {
	if limit < 0 {
		return errors.New("daily limit must not be negative")
	}
	if err := s.Store.Accounts().SetDailyLimit(ctx, accountID, limit); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("set daily limit: %w", err)
	}
	return nil
}
