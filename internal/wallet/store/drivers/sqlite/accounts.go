package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, identity, public_address, savings_address, encrypted_secret,
	pin_hash, totp_secret, daily_limit, spent_today, last_spend_date, created_at, updated_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var pinHash, totpSecret sql.NullString
	err := row.Scan(
		&a.ID, &a.Identity, &a.PublicAddress, &a.SavingsAddress, &a.EncryptedSecret,
		&pinHash, &totpSecret, &a.DailyLimit, &a.SpentToday, &a.LastSpendDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.PINHash = mapNullStringPtr(pinHash)
	a.TOTPSecret = mapNullStringPtr(totpSecret)
	return a, nil
}

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetByIdentity(ctx context.Context, identity string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE identity = ?`, identity)
	return scanAccount(row)
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (
			id, identity, public_address, savings_address, encrypted_secret,
			pin_hash, totp_secret, daily_limit, spent_today, last_spend_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Identity, a.PublicAddress, a.SavingsAddress, a.EncryptedSecret,
		mapOptionalString(a.PINHash), mapOptionalString(a.TOTPSecret),
		a.DailyLimit, a.SpentToday, a.LastSpendDate,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) UpdateEncryptedSecret(ctx context.Context, id string, ciphertext []byte, pinHash *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET encrypted_secret = ?, pin_hash = ?, updated_at = ?
		WHERE id = ?`,
		ciphertext, mapOptionalString(pinHash), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) UpdateTOTPSecret(ctx context.Context, id string, secret *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET totp_secret = ?, updated_at = ?
		WHERE id = ?`,
		mapOptionalString(secret), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) SetDailyLimit(ctx context.Context, id string, limit int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET daily_limit = ?, updated_at = ?
		WHERE id = ?`,
		limit, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ResetSpent starts a fresh spend day. Guarded on the stored date still
// being stale so two racing rollovers cannot both reset the counter.
func (r *accountsRepo) ResetSpent(ctx context.Context, id string, amount int64, today string) error {
	return guardRows(r.db.ExecContext(ctx, `
		UPDATE accounts SET spent_today = ?, last_spend_date = ?, updated_at = ?
		WHERE id = ? AND last_spend_date != ?`,
		amount, today, time.Now().UTC(), id, today))
}

// AddSpent increments the spend counter with the ceiling check folded into
// the same statement. Zero rows means the day rolled over underneath us or
// the budget ran out; the caller re-reads and decides.
func (r *accountsRepo) AddSpent(ctx context.Context, id string, amount int64, today string) error {
	return guardRows(r.db.ExecContext(ctx, `
		UPDATE accounts SET spent_today = spent_today + ?, updated_at = ?
		WHERE id = ? AND last_spend_date = ?
		  AND (daily_limit <= 0 OR spent_today + ? <= daily_limit)`,
		amount, time.Now().UTC(), id, today, amount))
}
