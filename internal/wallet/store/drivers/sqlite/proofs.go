package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/store"
)

type proofsRepo struct {
	db dbtx
}

func (r *proofsRepo) Create(ctx context.Context, p domain.PaymentProof) error {
	signals, err := json.Marshal(p.PublicSignals)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO payment_proofs (
			id, account_id, settlement_ref, signature, public_signals, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.AccountID, p.SettlementRef, p.Signature, string(signals), p.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *proofsRepo) GetBySettlementRef(ctx context.Context, ref string) (domain.PaymentProof, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, settlement_ref, signature, public_signals, created_at
		FROM payment_proofs WHERE settlement_ref = ?`, ref)

	var p domain.PaymentProof
	var signals string
	err := row.Scan(&p.ID, &p.AccountID, &p.SettlementRef, &p.Signature, &signals, &p.CreatedAt)
	if err != nil {
		return domain.PaymentProof{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(signals), &p.PublicSignals); err != nil {
		return domain.PaymentProof{}, err
	}
	return p, nil
}
