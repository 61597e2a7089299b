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

// DelegationService manages restricted spending grants. The delegator's
// seed is re-encrypted under a key derived solely from the delegate's
// identity, so resolving it later needs no interaction with the delegator.
type DelegationService struct {
	Store store.Store
}

// Grant creates (or replaces) the delegation from delegator to delegate.
// The previous active grant for the pair, if any, is deactivated in the
// same transaction so at most one active row ever exists.
func (s *DelegationService) Grant(ctx context.Context, delegatorSeed, delegatorID, delegateID string, dailyLimit int64) (domain.Delegation, error) {
	if !keyring.ValidSeed(delegatorSeed) {
		return domain.Delegation{}, fmt.Errorf("grant: %w", keyring.ErrBadSeed)
	}
	if delegatorID == delegateID {
		return domain.Delegation{}, errors.New("grant: cannot delegate to self")
	}

	key := keyring.DeriveDelegateKey(delegateID)
	shared, err := keyring.Encrypt([]byte(delegatorSeed), key)
	if err != nil {
		return domain.Delegation{}, fmt.Errorf("encrypt shared secret: %w", err)
	}

	now := time.Now().UTC()
	d := domain.Delegation{
		ID:           idx.New().String(),
		DelegatorID:  delegatorID,
		DelegateID:   delegateID,
		SharedSecret: shared,
		Active:       true,
		SpendLimit:   domain.SpendLimit{DailyLimit: dailyLimit},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Delegations().DeactivatePair(ctx, delegatorID, delegateID); err != nil {
			return err
		}
		return tx.Delegations().Create(ctx, d)
	})
	if err != nil {
		return domain.Delegation{}, fmt.Errorf("persist grant: %w", err)
	}
	return d, nil
}

// ResolveDelegatedSecret recovers the delegator's seed from an active grant.
// Any failure, revoked grant, wrong delegate, undecryptable or malformed
// secret, collapses into ErrDelegationUnauthorized: the caller learns
// nothing about which check failed.
func (s *DelegationService) ResolveDelegatedSecret(ctx context.Context, delegation domain.Delegation, delegateID string) (string, error) {
	if !delegation.Active || delegation.DelegateID != delegateID {
		return "", domain.ErrDelegationUnauthorized
	}

	key := keyring.DeriveDelegateKey(delegateID)
	plaintext, err := keyring.Decrypt(delegation.SharedSecret, key)
	if err != nil {
		return "", domain.ErrDelegationUnauthorized
	}

	seed := string(plaintext)
	if !keyring.ValidSeed(seed) {
		return "", domain.ErrDelegationUnauthorized
	}
	return seed, nil
}

// Revoke deactivates a grant. Takes effect immediately for all future
// resolutions even though the ciphertext stays on disk.
func (s *DelegationService) Revoke(ctx context.Context, delegationID string) error {
	if err := s.Store.Delegations().Revoke(ctx, delegationID); err != nil {
		return fmt.Errorf("revoke delegation: %w", err)
	}
	return nil
}

// UpdateLimit edits the daily ceiling of an active grant.
func (s *DelegationService) UpdateLimit(ctx context.Context, delegationID string, dailyLimit int64) error {
	if dailyLimit < 0 {
		return errors.New("daily limit must not be negative")
	}
	if err := s.Store.Delegations().SetDailyLimit(ctx, delegationID, dailyLimit); err != nil {
		return fmt.Errorf("update delegation limit: %w", err)
	}
	return nil
}

// ListGranted returns the active delegations an account has given out.
func (s *DelegationService) ListGranted(ctx context.Context, delegatorID string) ([]domain.Delegation, error) {
	return s.Store.Delegations().ListByDelegator(ctx, delegatorID)
}

// ListReceived returns the active delegations an account can spend under.
func (s *DelegationService) ListReceived(ctx context.Context, delegateID string) ([]domain.Delegation, error) {
	return s.Store.Delegations().ListByDelegate(ctx, delegateID)
}
