package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/settle"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/pkg/idx"
	"github.com/chillarlabs/chillar/pkg/slogx"
)

// PaymentService executes payment intents end to end: limit check, secret
// resolution (own vault or delegation), optional round-up split, one or two
// settlement legs, counter commit and best-effort attestation. Each intent
// is a single request/response flow with no background work.
type PaymentService struct {
	Store       store.Store
	Vault       *VaultService
	Delegations *DelegationService
	Spend       *SpendService
	Attest      *AttestService
	Settlement  settle.Service

	SplitPolicy SplitPolicy
}

// Execute runs the intent for the given payer account. pin is the payer's
// own unlock credential and is ignored for delegated spends, where the
// shared secret resolves from the delegate identity alone.
func (s *PaymentService) Execute(ctx context.Context, payerID, pin string, intent domain.PaymentIntent) (domain.PaymentReceipt, error) {
	log := slogx.FromContext(ctx)

	if intent.Amount <= 0 || intent.RecipientAddress == "" {
		return domain.PaymentReceipt{}, domain.ErrInvalidIntent
	}

	payer, err := s.Store.Accounts().GetByID(ctx, payerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PaymentReceipt{}, ErrAccountNotFound
		}
		return domain.PaymentReceipt{}, fmt.Errorf("load payer: %w", err)
	}

	principal, savings := SplitAmount(intent.Amount, s.SplitPolicy)
	if !intent.SplitEnabled {
		savings = 0
	}

	var (
		seed       string
		delegation domain.Delegation
		delegated  = intent.DelegatorID != ""
	)

	if delegated {
		delegation, err = s.Store.Delegations().GetActiveByPair(ctx, intent.DelegatorID, payerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.PaymentReceipt{}, domain.ErrDelegationUnauthorized
			}
			return domain.PaymentReceipt{}, fmt.Errorf("load delegation: %w", err)
		}
		if err := s.Spend.CheckLimit(delegation.SpendLimit, intent.Amount); err != nil {
			return domain.PaymentReceipt{}, err
		}
		seed, err = s.Delegations.ResolveDelegatedSecret(ctx, delegation, payerID)
		if err != nil {
			return domain.PaymentReceipt{}, err
		}
	} else {
		if err := s.Spend.CheckLimit(payer.SpendLimit, intent.Amount); err != nil {
			return domain.PaymentReceipt{}, err
		}
		seed, err = s.Vault.ResolveSecret(ctx, payer, pin)
		if err != nil {
			return domain.PaymentReceipt{}, err
		}
	}

	// The sender of both legs is the account whose seed signs them: the
	// payer for a direct spend, the delegator for a delegated one.
	sender := payer
	if delegated {
		sender, err = s.Store.Accounts().GetByID(ctx, intent.DelegatorID)
		if err != nil {
			return domain.PaymentReceipt{}, fmt.Errorf("load delegator: %w", err)
		}
	}

	idemKey := intent.IdempotencyKey
	if idemKey == "" {
		idemKey = idx.New().String()
	}

	ref, err := s.Settlement.SubmitTransfer(ctx, seed, settle.Transfer{
		SenderAddress:  sender.PublicAddress,
		Destination:    intent.RecipientAddress,
		Amount:         principal,
		Note:           intent.CounterpartyID,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		// A transport-level failure is ambiguous: the transfer may have
		// landed before the connection died. Confirm its fate by
		// idempotency key before declaring failure, so a settled transfer
		// is never reported as failed and retried into a double spend.
		if errors.Is(err, settle.ErrUnavailable) {
			if landedRef, ok, lookupErr := s.Settlement.LookupTransfer(ctx, idemKey); lookupErr == nil && ok {
				log.Warn("transfer landed despite transport failure",
					"settlement_ref", landedRef)
				ref, err = landedRef, nil
			}
		}
		if err != nil {
			// Surfaced verbatim, never retried here. A caller retry must
			// reuse the intent's idempotency key.
			return domain.PaymentReceipt{}, fmt.Errorf("%w: %w", domain.ErrSettlementFailed, err)
		}
	}

	receipt := domain.PaymentReceipt{
		SettlementRef: ref,
		Amount:        principal,
		SavingsAmount: savings,
		Remaining:     -1,
	}

	// Counter commit happens only after the principal leg settled.
	if delegated {
		err = s.Spend.CommitDelegation(ctx, delegation, intent.Amount)
	} else {
		err = s.Spend.CommitAccount(ctx, payer, intent.Amount)
	}
	if err != nil {
		var lim *domain.LimitExceededError
		if errors.As(err, &lim) {
			// A concurrent spend won the guard after our advisory check.
			// The transfer stands; the overrun is reported, not unwound.
			log.Warn("spend committed past ceiling by concurrent race",
				"settlement_ref", ref)
			receipt.Warnings = append(receipt.Warnings, domain.WarningLimitOverrunByRace)
		} else {
			return receipt, fmt.Errorf("commit spend counter: %w", err)
		}
	}
	receipt.Remaining = s.remainingAfter(ctx, payerID, delegated, delegation.ID)

	// Savings leg: best effort, strictly after the principal settled.
	if savings > 0 {
		savingsRef, err := s.Settlement.SubmitTransfer(ctx, seed, settle.Transfer{
			SenderAddress:  sender.PublicAddress,
			Destination:    sender.SavingsAddress,
			Amount:         savings,
			Note:           "round-up savings",
			IdempotencyKey: idx.New().String(),
		})
		if err != nil {
			log.Warn("savings leg failed after settled principal",
				"settlement_ref", ref, "error", err)
			receipt.SavingsSettlementRef = ""
			receipt.SavingsAmount = 0
			receipt.Warnings = append(receipt.Warnings, domain.WarningSavingsLegFailed)
		} else {
			receipt.SavingsSettlementRef = savingsRef
		}
	}

	// Attestation: best effort, never unwinds the transfer.
	proof, err := s.Attest.Attest(ctx, seed, payer.ID, ref, principal, intent.CounterpartyID)
	if err != nil {
		log.Warn("proof generation failed", "settlement_ref", ref, "error", err)
		receipt.Warnings = append(receipt.Warnings, domain.WarningProofGenerationFailed)
	} else {
		receipt.Proof = &proof
	}

	return receipt, nil
}

// remainingAfter re-reads the governing counter for the receipt's remaining
// figure. Best effort; -1 means unlimited or unknown.
func (s *PaymentService) remainingAfter(ctx context.Context, payerID string, delegated bool, delegationID string) int64 {
	today := s.Spend.Today()

	var limit domain.SpendLimit
	if delegated {
		d, err := s.Store.Delegations().GetByID(ctx, delegationID)
		if err != nil {
			return -1
		}
		limit = d.SpendLimit
	} else {
		a, err := s.Store.Accounts().GetByID(ctx, payerID)
		if err != nil {
			return -1
		}
		limit = a.SpendLimit
	}

	remaining, limited := limit.Remaining(today)
	if !limited {
		return -1
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
