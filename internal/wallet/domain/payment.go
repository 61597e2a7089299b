package domain

// PaymentIntent describes a single requested transfer. It is transient: the
// core never persists intents, only their settled outcomes.
type PaymentIntent struct {
	Amount           int64  // minor units, must be > 0
	RecipientAddress string // ledger destination for the principal leg
	CounterpartyID   string // identity of the receiving party, bound into the proof
	SplitEnabled     bool   // request the round-up savings leg

	// DelegatorID is set when the caller spends under a delegation rather
	// than their own authority.
	DelegatorID string

	// IdempotencyKey deduplicates the principal leg at the settlement
	// service. Callers retrying after a reported failure must reuse the
	// key of the failed attempt; left empty, a fresh key is generated.
	IdempotencyKey string
}

// Warning values attached to a PaymentReceipt when a step after the settled
// principal leg degrades. Stable identifiers, safe to match on.
const (
	WarningSavingsLegFailed      = "savings_leg_failed"
	WarningProofGenerationFailed = "proof_generation_failed"
	WarningLimitOverrunByRace    = "limit_reached_by_concurrent_spend"
)

// PaymentReceipt reports the outcome of an executed intent. A receipt exists
// only for settled payments; soft failures after settlement (savings leg,
// proof generation) surface as warnings here instead of errors.
type PaymentReceipt struct {
	SettlementRef        string // principal leg reference
	SavingsSettlementRef string // savings leg reference, empty if skipped or failed
	Amount               int64
	SavingsAmount        int64
	Remaining            int64 // budget left after this spend, -1 when unlimited

	Proof *PaymentProof // nil when proof generation failed

	// Warnings carry non-fatal degradations (savings leg failure, proof
	// generation failure) the caller may want to retry or surface.
	Warnings []string
}
