package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrVaultLocked means every credential-recovery attempt failed. Fatal
	// for the current intent; the user must re-authenticate.
	ErrVaultLocked = errors.New("vault locked: secret recovery failed")

	// ErrDelegationUnauthorized means the grant is missing, revoked, or its
	// shared secret does not resolve under the delegate's key.
	ErrDelegationUnauthorized = errors.New("delegation unauthorized")

	// ErrInvalidPIN means the entered PIN failed local validation or did not
	// match the stored hash. Fatal for this attempt.
	ErrInvalidPIN = errors.New("invalid pin")

	// ErrSettlementFailed wraps a settlement-service rejection. Never
	// retried inside the engine; a retry is an explicit caller decision with
	// a fresh idempotency key.
	ErrSettlementFailed = errors.New("settlement failed")

	// ErrProofGeneration is the non-fatal warning attached to a receipt when
	// attestation fails after the transfer already settled.
	ErrProofGeneration = errors.New("proof generation failed")

	// ErrInvalidIntent reports a malformed payment intent (non-positive
	// amount, missing destination).
	ErrInvalidIntent = errors.New("invalid payment intent")
)

// LimitExceededError is the policy rejection for a spend over the daily
// ceiling. It carries the remaining budget so the caller can show it.
type LimitExceededError struct {
	Remaining int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("daily limit exceeded: %d remaining", e.Remaining)
}

// ErrLimitExceeded is the matching target for errors.Is on any
// LimitExceededError.
var ErrLimitExceeded = errors.New("daily limit exceeded")

// Is lets errors.Is(err, ErrLimitExceeded) match typed instances.
func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}
