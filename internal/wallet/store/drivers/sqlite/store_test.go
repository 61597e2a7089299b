package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedAccount(t *testing.T, s *Store, identity string, limit int64) domain.Account {
	t.Helper()

	now := time.Now().UTC()
	a := domain.Account{
		ID:              idx.New().String(),
		Identity:        identity,
		PublicAddress:   "C" + idx.New().String(),
		SavingsAddress:  "C" + idx.New().String(),
		EncryptedSecret: []byte("ciphertext"),
		SpendLimit:      domain.SpendLimit{DailyLimit: limit},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, s.Accounts().Create(context.Background(), a))
	return a
}

func TestAccountsCreateAndGet(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "61400000001", 0)

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.Identity, got.Identity)
	require.Equal(t, a.EncryptedSecret, got.EncryptedSecret)
	require.Nil(t, got.PINHash)

	got, err = s.Accounts().GetByIdentity(ctx, a.Identity)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	_, err = s.Accounts().GetByIdentity(ctx, "61400999999")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccountsIdentityIsUnique(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	a := seedAccount(t, s, "61400000002", 0)

	dup := a
	dup.ID = idx.New().String()
	err := s.Accounts().Create(context.Background(), dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccountsUpdateEncryptedSecretReplacesPINHash(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "61400000003", 0)

	hash := "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"
	require.NoError(t, s.Accounts().UpdateEncryptedSecret(ctx, a.ID, []byte("rekeyed"), &hash))

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, []byte("rekeyed"), got.EncryptedSecret)
	require.NotNil(t, got.PINHash)
	require.Equal(t, hash, *got.PINHash)

	// Clearing the hash goes back to the default-credential state.
	require.NoError(t, s.Accounts().UpdateEncryptedSecret(ctx, a.ID, []byte("again"), nil))
	got, err = s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Nil(t, got.PINHash)
}

func TestAccountsAddSpentEnforcesCeilingAtomically(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	today := "2026-08-29"

	a := seedAccount(t, s, "61400000004", 100)
	require.NoError(t, s.Accounts().ResetSpent(ctx, a.ID, 0, today))

	require.NoError(t, s.Accounts().AddSpent(ctx, a.ID, 90, today))

	// 90 + 11 breaches the 100 ceiling; the guard must refuse the row.
	err := s.Accounts().AddSpent(ctx, a.ID, 11, today)
	require.ErrorIs(t, err, store.ErrConflict)

	// An exact fit still goes through.
	require.NoError(t, s.Accounts().AddSpent(ctx, a.ID, 10, today))

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, int64(100), got.SpentToday)
}

func TestAccountsAddSpentRequiresCurrentDay(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "61400000005", 100)
	require.NoError(t, s.Accounts().ResetSpent(ctx, a.ID, 50, "2026-08-28"))

	// Stored date is yesterday, so the increment must not apply.
	err := s.Accounts().AddSpent(ctx, a.ID, 10, "2026-08-29")
	require.ErrorIs(t, err, store.ErrConflict)

	// Rollover then retry.
	require.NoError(t, s.Accounts().ResetSpent(ctx, a.ID, 0, "2026-08-29"))
	require.NoError(t, s.Accounts().AddSpent(ctx, a.ID, 10, "2026-08-29"))

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.SpentToday)
	require.Equal(t, "2026-08-29", got.LastSpendDate)
}

func TestAccountsResetSpentOnlyAppliesOnStaleDay(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	today := "2026-08-29"

	a := seedAccount(t, s, "61400000006", 100)
	require.NoError(t, s.Accounts().ResetSpent(ctx, a.ID, 25, today))

	// A second reset for the same day would wipe a concurrent spend.
	err := s.Accounts().ResetSpent(ctx, a.ID, 0, today)
	require.ErrorIs(t, err, store.ErrConflict)

	got, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, int64(25), got.SpentToday)
}

func seedDelegation(t *testing.T, s *Store, delegatorID, delegateID string, limit int64) domain.Delegation {
	t.Helper()

	now := time.Now().UTC()
	d := domain.Delegation{
		ID:           idx.New().String(),
		DelegatorID:  delegatorID,
		DelegateID:   delegateID,
		SharedSecret: []byte("delegated-ciphertext"),
		Active:       true,
		SpendLimit:   domain.SpendLimit{DailyLimit: limit},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Delegations().Create(context.Background(), d))
	return d
}

func TestDelegationsOneActiveRowPerPair(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	parent := seedAccount(t, s, "61400000010", 0)
	child := seedAccount(t, s, "61400000011", 0)

	first := seedDelegation(t, s, parent.ID, child.ID, 100)

	// Replacing a grant deactivates the old row inside the same tx.
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Delegations().DeactivatePair(ctx, parent.ID, child.ID); err != nil {
			return err
		}
		replacement := first
		replacement.ID = idx.New().String()
		replacement.DailyLimit = 200
		return tx.Delegations().Create(ctx, replacement)
	})
	require.NoError(t, err)

	active, err := s.Delegations().GetActiveByPair(ctx, parent.ID, child.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, active.ID)
	require.Equal(t, int64(200), active.DailyLimit)

	old, err := s.Delegations().GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, old.Active)
}

func TestDelegationsRevokeTakesEffectImmediately(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	parent := seedAccount(t, s, "61400000012", 0)
	child := seedAccount(t, s, "61400000013", 0)
	d := seedDelegation(t, s, parent.ID, child.ID, 100)

	require.NoError(t, s.Delegations().Revoke(ctx, d.ID))

	_, err := s.Delegations().GetActiveByPair(ctx, parent.ID, child.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Counter updates against a revoked row must refuse.
	err = s.Delegations().AddSpent(ctx, d.ID, 10, "2026-08-29")
	require.ErrorIs(t, err, store.ErrConflict)

	// Double revoke is a not-found.
	require.ErrorIs(t, s.Delegations().Revoke(ctx, d.ID), store.ErrNotFound)
}

func TestDelegationsListScopes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	parent := seedAccount(t, s, "61400000014", 0)
	childA := seedAccount(t, s, "61400000015", 0)
	childB := seedAccount(t, s, "61400000016", 0)

	seedDelegation(t, s, parent.ID, childA.ID, 100)
	seedDelegation(t, s, parent.ID, childB.ID, 50)

	byDelegator, err := s.Delegations().ListByDelegator(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, byDelegator, 2)

	byDelegate, err := s.Delegations().ListByDelegate(ctx, childA.ID)
	require.NoError(t, err)
	require.Len(t, byDelegate, 1)
	require.Equal(t, parent.ID, byDelegate[0].DelegatorID)
}

func TestProofsRoundTripAndRefUniqueness(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	a := seedAccount(t, s, "61400000020", 0)

	p := domain.PaymentProof{
		ID:            idx.New().String(),
		AccountID:     a.ID,
		SettlementRef: "TXREF123456",
		Signature:     []byte("sig"),
		PublicSignals: []string{"abcd1234", "TXREF123", "142"},
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, s.Proofs().Create(ctx, p))

	got, err := s.Proofs().GetBySettlementRef(ctx, "TXREF123456")
	require.NoError(t, err)
	require.Equal(t, p.PublicSignals, got.PublicSignals)
	require.Equal(t, p.Signature, got.Signature)

	dup := p
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Proofs().Create(ctx, dup), store.ErrAlreadyExists)
}
