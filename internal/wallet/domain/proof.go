package domain

import "time"

// PaymentProof is a verifiable attestation binding a settled transfer to its
// amount and counterparty. A downstream payout verifier re-derives the
// challenge from (SettlementRef, Amount, CounterpartyID) and checks the
// signature against the signer's public address before releasing any fiat
// payout.
//
// Immutable once created. Failure to create one never invalidates the
// underlying settled transfer.
type PaymentProof struct {
	ID            string
	AccountID     string
	SettlementRef string
	Signature     []byte

	// PublicSignals, in order: signer address hash, settlement reference
	// prefix, amount (decimal string).
	PublicSignals []string

	CreatedAt time.Time
}
