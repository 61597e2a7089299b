package walletsdk

// ErrorResponse is the standard JSON error envelope returned by every
// endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "limit_exceeded")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Remaining is set on limit_exceeded responses: the budget left today
	// in minor currency units.
	Remaining *int64 `json:"remaining,omitempty"`
}

// OnboardRequest creates a wallet account for a phone identity.
type OnboardRequest struct {
	// Identity is the phone handle the account is keyed by
	Identity string `json:"identity"`

	// PIN is the optional 4-digit unlock credential. Empty enrolls the
	// account in the documented default-credential mode.
	PIN string `json:"pin,omitempty"`

	// DailyLimit is the optional spend ceiling in minor units; 0 = none
	DailyLimit int64 `json:"daily_limit,omitempty"`
}

// AccountResponse is the public view of an account. It never carries secret
// material: no ciphertext, no PIN hash, no TOTP secret.
type AccountResponse struct {
	ID             string `json:"id"`
	Identity       string `json:"identity"`
	PublicAddress  string `json:"public_address"`
	SavingsAddress string `json:"savings_address"`
	DailyLimit     int64  `json:"daily_limit"`
	SpentToday     int64  `json:"spent_today"`
	LastSpendDate  string `json:"last_spend_date,omitempty"`
	HasPIN         bool   `json:"has_pin"`
	DeviceEnrolled bool   `json:"device_enrolled"`
	CreatedAt      string `json:"created_at"`
}

// SessionRequest unlocks a wallet session with one authentication factor.
type SessionRequest struct {
	Identity string `json:"identity"`

	// PIN unlocks by PIN (empty for default-credential accounts when Code
	// is also empty).
	PIN string `json:"pin,omitempty"`

	// Code unlocks by device authenticator assertion instead of PIN.
	Code string `json:"code,omitempty"`
}

// SessionResponse is the minted wallet session token.
type SessionResponse struct {
	AccountID string `json:"account_id"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "Bearer"
	ExpiresAt string `json:"expires_at"` // RFC 3339
}

// ChangePINRequest rekeys the vault onto a new PIN.
type ChangePINRequest struct {
	OldPIN string `json:"old_pin,omitempty"` // empty for default-credential accounts
	NewPIN string `json:"new_pin"`
}

// LimitRequest sets a daily spend ceiling. Zero removes it.
type LimitRequest struct {
	DailyLimit int64 `json:"daily_limit"`
}

// DeviceEnrollResponse carries what the device needs to finish TOTP
// enrollment.
type DeviceEnrollResponse struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
	ExpiresAt string `json:"expires_at"`
}

// DeviceVerifyRequest confirms enrollment with the device's first code.
type DeviceVerifyRequest struct {
	Code string `json:"code"`
}

// DelegationRequest grants restricted spending rights to another account.
type DelegationRequest struct {
	// DelegateID is the account receiving the grant
	DelegateID string `json:"delegate_id"`

	// DailyLimit caps the delegate's spending per day; 0 = unlimited
	DailyLimit int64 `json:"daily_limit"`

	// PIN is the delegator's unlock credential, needed to resolve the
	// seed being shared.
	PIN string `json:"pin,omitempty"`
}

// DelegationResponse is the public view of a grant. The shared ciphertext
// never leaves the service.
type DelegationResponse struct {
	ID            string `json:"id"`
	DelegatorID   string `json:"delegator_id"`
	DelegateID    string `json:"delegate_id"`
	DailyLimit    int64  `json:"daily_limit"`
	SpentToday    int64  `json:"spent_today"`
	LastSpendDate string `json:"last_spend_date,omitempty"`
	Active        bool   `json:"active"`
	CreatedAt     string `json:"created_at"`
}

// DelegationListResponse wraps both directions of an account's grants.
type DelegationListResponse struct {
	Granted  []DelegationResponse `json:"granted"`
	Received []DelegationResponse `json:"received"`
}

// PaymentRequest executes a payment intent for the session's account.
type PaymentRequest struct {
	Amount           int64  `json:"amount"`
	RecipientAddress string `json:"recipient_address"`
	CounterpartyID   string `json:"counterparty_id,omitempty"`
	SplitEnabled     bool   `json:"split_enabled,omitempty"`

	// DelegatorID spends under that account's delegation instead of the
	// session account's own vault.
	DelegatorID string `json:"delegator_id,omitempty"`

	// PIN unlocks the session account's own vault; unused for delegated
	// spends.
	PIN string `json:"pin,omitempty"`

	// IdempotencyKey deduplicates the payment at the settlement service.
	// When retrying a payment that failed with settlement_failed, send the
	// same key again; the transfer settles at most once.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// Warning values a PaymentReceiptResponse may carry when a step after the
// settled principal leg degraded. Stable identifiers, safe to match on.
const (
	WarningSavingsLegFailed      = "savings_leg_failed"
	WarningProofGenerationFailed = "proof_generation_failed"
	WarningLimitOverrunByRace    = "limit_reached_by_concurrent_spend"
)

// PaymentReceiptResponse reports a settled payment.
type PaymentReceiptResponse struct {
	SettlementRef        string         `json:"settlement_ref"`
	SavingsSettlementRef string         `json:"savings_settlement_ref,omitempty"`
	Amount               int64          `json:"amount"`
	SavingsAmount        int64          `json:"savings_amount"`
	Remaining            int64          `json:"remaining"` // -1 when unlimited
	Proof                *ProofResponse `json:"proof,omitempty"`
	Warnings             []string       `json:"warnings,omitempty"`
}

// ProofResponse is a stored payment attestation for payout verification.
type ProofResponse struct {
	ID            string   `json:"id"`
	AccountID     string   `json:"account_id"`
	SettlementRef string   `json:"settlement_ref"`
	Signature     string   `json:"signature"` // base64
	PublicSignals []string `json:"public_signals"`
	CreatedAt     string   `json:"created_at"`
}

// HealthResponse is the livez/readyz payload.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's critical dependencies.
type HealthChecks struct {
	Database   string `json:"database"`
	Signer     string `json:"signer"`
	Settlement string `json:"settlement"`
}
