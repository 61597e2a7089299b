// Package store defines the record-store boundary for the wallet core.
// Concrete drivers (sqlite today) implement Store; services never assume
// synchronous local storage and always pass a context.
package store

import (
	"context"
	"errors"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports that a guarded counter update applied zero rows:
	// either the day rolled over underneath the caller or a concurrent spend
	// consumed the remaining budget. Callers re-read and re-check.
	ErrConflict = errors.New("store: concurrent update conflict")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Accounts() Accounts
	Delegations() Delegations
	Proofs() Proofs

	ApplyMigrations() error

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed. This
	// is the recommended way to handle multi-step operations that must be
	// atomic (e.g. rekeying, grant replacement).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetByID returns an account by id.
	GetByID(ctx context.Context, id string) (domain.Account, error)

	// GetByIdentity returns an account by its phone identity.
	GetByIdentity(ctx context.Context, identity string) (domain.Account, error)

	// Create inserts a new account (id is provided by the app via ULID).
	Create(ctx context.Context, a domain.Account) error

	// UpdateEncryptedSecret replaces the stored ciphertext and PIN hash in
	// one statement. Used by vault rekeying; must never partially apply.
	UpdateEncryptedSecret(ctx context.Context, id string, ciphertext []byte, pinHash *string) error

	// UpdateTOTPSecret sets the device authenticator secret.
	UpdateTOTPSecret(ctx context.Context, id string, secret *string) error

	// SetDailyLimit changes the account's own daily ceiling.
	SetDailyLimit(ctx context.Context, id string, limit int64) error

	// ResetSpent starts a fresh spend day: sets spent_today to amount and
	// last_spend_date to today. Guarded so it only applies when the stored
	// date still differs from today; returns ErrConflict otherwise.
	ResetSpent(ctx context.Context, id string, amount int64, today string) error

	// AddSpent atomically increments spent_today by amount for the given
	// day. The increment is guarded against the daily limit in the same
	// statement, so two concurrent spenders can never both land over the
	// ceiling. Returns ErrConflict when the guard refuses the row.
	AddSpent(ctx context.Context, id string, amount int64, today string) error
}

type Delegations interface {
	// GetByID returns a delegation row regardless of active state.
	GetByID(ctx context.Context, id string) (domain.Delegation, error)

	// GetActiveByPair returns the single active delegation for the
	// (delegator, delegate) pair, or ErrNotFound.
	GetActiveByPair(ctx context.Context, delegatorID, delegateID string) (domain.Delegation, error)

	// ListByDelegator returns all active delegations granted by an account.
	ListByDelegator(ctx context.Context, delegatorID string) ([]domain.Delegation, error)

	// ListByDelegate returns all active delegations granted to an account.
	ListByDelegate(ctx context.Context, delegateID string) ([]domain.Delegation, error)

	// Create inserts a new delegation row.
	Create(ctx context.Context, d domain.Delegation) error

	// DeactivatePair soft-deletes any active rows for the pair. Called
	// inside the grant transaction to keep the one-active-row invariant.
	DeactivatePair(ctx context.Context, delegatorID, delegateID string) error

	// Revoke soft-deletes a single delegation by id.
	Revoke(ctx context.Context, id string) error

	// SetDailyLimit edits the ceiling of an active delegation.
	SetDailyLimit(ctx context.Context, id string, limit int64) error

	// ResetSpent and AddSpent mirror the account counter primitives,
	// scoped to one delegation row.
	ResetSpent(ctx context.Context, id string, amount int64, today string) error
	AddSpent(ctx context.Context, id string, amount int64, today string) error
}

type Proofs interface {
	// Create persists a freshly generated payment proof.
	Create(ctx context.Context, p domain.PaymentProof) error

	// GetBySettlementRef fetches the proof attached to a settled transfer.
	GetBySettlementRef(ctx context.Context, ref string) (domain.PaymentProof, error)
}
