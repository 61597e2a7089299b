package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
)

type delegationsRepo struct {
	db dbtx
}

const delegationColumns = `id, delegator_id, delegate_id, shared_secret, active,
	daily_limit, spent_today, last_spend_date, created_at, updated_at`

func scanDelegation(row *sql.Row) (domain.Delegation, error) {
	var d domain.Delegation
	err := row.Scan(
		&d.ID, &d.DelegatorID, &d.DelegateID, &d.SharedSecret, &d.Active,
		&d.DailyLimit, &d.SpentToday, &d.LastSpendDate, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return domain.Delegation{}, mapNotFound(err)
	}
	return d, nil
}

func (r *delegationsRepo) GetByID(ctx context.Context, id string) (domain.Delegation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+delegationColumns+` FROM delegations WHERE id = ?`, id)
	return scanDelegation(row)
}

func (r *delegationsRepo) GetActiveByPair(ctx context.Context, delegatorID, delegateID string) (domain.Delegation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+delegationColumns+` FROM delegations
		WHERE delegator_id = ? AND delegate_id = ? AND active = 1`,
		delegatorID, delegateID)
	return scanDelegation(row)
}

func (r *delegationsRepo) list(ctx context.Context, query, arg string) ([]domain.Delegation, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Delegation
	for rows.Next() {
		var d domain.Delegation
		if err := rows.Scan(
			&d.ID, &d.DelegatorID, &d.DelegateID, &d.SharedSecret, &d.Active,
			&d.DailyLimit, &d.SpentToday, &d.LastSpendDate, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *delegationsRepo) ListByDelegator(ctx context.Context, delegatorID string) ([]domain.Delegation, error) {
	return r.list(ctx,
		`SELECT `+delegationColumns+` FROM delegations
		WHERE delegator_id = ? AND active = 1 ORDER BY created_at`, delegatorID)
}

func (r *delegationsRepo) ListByDelegate(ctx context.Context, delegateID string) ([]domain.Delegation, error) {
	return r.list(ctx,
		`SELECT `+delegationColumns+` FROM delegations
		WHERE delegate_id = ? AND active = 1 ORDER BY created_at`, delegateID)
}

func (r *delegationsRepo) Create(ctx context.Context, d domain.Delegation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO delegations (
			id, delegator_id, delegate_id, shared_secret, active,
			daily_limit, spent_today, last_spend_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.DelegatorID, d.DelegateID, d.SharedSecret, d.Active,
		d.DailyLimit, d.SpentToday, d.LastSpendDate, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (r *delegationsRepo) DeactivatePair(ctx context.Context, delegatorID, delegateID string) error {
	// No row to deactivate is fine; the grant is simply the first one.
	_, err := r.db.ExecContext(ctx, `
		UPDATE delegations SET active = 0, updated_at = ?
		WHERE delegator_id = ? AND delegate_id = ? AND active = 1`,
		time.Now().UTC(), delegatorID, delegateID)
	return err
}

func (r *delegationsRepo) Revoke(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE delegations SET active = 0, updated_at = ?
		WHERE id = ? AND active = 1`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *delegationsRepo) SetDailyLimit(ctx context.Context, id string, limit int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE delegations SET daily_limit = ?, updated_at = ?
		WHERE id = ? AND active = 1`,
		limit, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *delegationsRepo) ResetSpent(ctx context.Context, id string, amount int64, today string) error {
	return guardRows(r.db.ExecContext(ctx, `
		UPDATE delegations SET spent_today = ?, last_spend_date = ?, updated_at = ?
		WHERE id = ? AND active = 1 AND last_spend_date != ?`,
		amount, today, time.Now().UTC(), id, today))
}

func (r *delegationsRepo) AddSpent(ctx context.Context, id string, amount int64, today string) error {
	return guardRows(r.db.ExecContext(ctx, `
		UPDATE delegations SET spent_today = spent_today + ?, updated_at = ?
		WHERE id = ? AND active = 1 AND last_spend_date = ?
		  AND (daily_limit <= 0 OR spent_today + ? <= daily_limit)`,
		amount, time.Now().UTC(), id, today, amount))
}
