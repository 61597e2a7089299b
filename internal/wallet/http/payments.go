package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/service"
	"github.com/chillarlabs/chillar/pkg/httpx"
	"github.com/chillarlabs/chillar/pkg/slogx"
	"github.com/chillarlabs/chillar/pkg/walletsdk"
)

// PaymentsHandler executes payment intents.
type PaymentsHandler struct {
	PaymentService *service.PaymentService
}

func proofView(p domain.PaymentProof) walletsdk.ProofResponse {
	return walletsdk.ProofResponse{
		ID:            p.ID,
		AccountID:     p.AccountID,
		SettlementRef: p.SettlementRef,
		Signature:     base64.StdEncoding.EncodeToString(p.Signature),
		PublicSignals: p.PublicSignals,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// HandleExecute handles POST /v1/payments
//
//	@Summary		Execute a payment
//	@Description	Runs the full flow: limit check, secret resolution (own vault or delegation),
//	@Description	optional round-up split, settlement and best-effort attestation. Soft failures
//	@Description	after settlement surface as warnings on the receipt.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		walletsdk.PaymentRequest			true	"Payment intent"
//	@Success		201		{object}	walletsdk.PaymentReceiptResponse	"Settled payment"
//	@Failure		400		{object}	walletsdk.ErrorResponse				"Malformed intent"
//	@Failure		401		{object}	walletsdk.ErrorResponse				"Invalid or missing session token"
//	@Failure		403		{object}	walletsdk.ErrorResponse				"Vault, delegation or limit refusal"
//	@Failure		502		{object}	walletsdk.ErrorResponse				"Settlement failure"
//	@Router			/v1/payments [post].
func (h *PaymentsHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var req walletsdk.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	receipt, err := h.PaymentService.Execute(ctx, accountID, req.PIN, domain.PaymentIntent{
		Amount:           req.Amount,
		RecipientAddress: req.RecipientAddress,
		CounterpartyID:   req.CounterpartyID,
		SplitEnabled:     req.SplitEnabled,
		DelegatorID:      req.DelegatorID,
		IdempotencyKey:   req.IdempotencyKey,
	})
	if err != nil {
		var lim *domain.LimitExceededError
		switch {
		case errors.As(err, &lim):
			walletsdk.LimitExceededError(lim.Remaining).WriteError(w)
		case errors.Is(err, domain.ErrInvalidIntent):
			walletsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, domain.ErrInvalidPIN):
			walletsdk.ErrInvalidPIN.WriteError(w)
		case errors.Is(err, domain.ErrVaultLocked):
			walletsdk.ErrVaultLocked.WriteError(w)
		case errors.Is(err, domain.ErrDelegationUnauthorized):
			walletsdk.ErrDelegationDenied.WriteError(w)
		case errors.Is(err, domain.ErrSettlementFailed):
			log.Warn("settlement failed", "account_id", accountID, "err", err)
			walletsdk.ErrSettlementFailed.WriteError(w)
		default:
			log.Error("payment failed", "account_id", accountID, "err", err)
			walletsdk.ErrServerError.WriteError(w)
		}
		return
	}

	out := walletsdk.PaymentReceiptResponse{
		SettlementRef:        receipt.SettlementRef,
		SavingsSettlementRef: receipt.SavingsSettlementRef,
		Amount:               receipt.Amount,
		SavingsAmount:        receipt.SavingsAmount,
		Remaining:            receipt.Remaining,
		Warnings:             receipt.Warnings,
	}
	if receipt.Proof != nil {
		proof := proofView(*receipt.Proof)
		out.Proof = &proof
	}

	log.Info("payment settled",
		"account_id", accountID,
		"settlement_ref", receipt.SettlementRef,
		"amount", receipt.Amount,
		"savings", receipt.SavingsAmount,
	)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, out)
}

// ProofsHandler serves stored payment proofs.
type ProofsHandler struct {
	AttestService *service.AttestService
}

// HandleGet handles GET /v1/proofs/{ref}
//
//	@Summary		Fetch a payment proof
//	@Description	Returns the stored attestation for a settled transfer, for payout verification.
//	@Tags			Payments
//	@Produce		json
//	@Param			ref	path		string					true	"Settlement reference"
//	@Success		200	{object}	walletsdk.ProofResponse	"Proof"
//	@Failure		404	{object}	walletsdk.ErrorResponse	"No proof for this reference"
//	@Router			/v1/proofs/{ref} [get].
func (h *ProofsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	proof, err := h.AttestService.GetProof(r.Context(), r.PathValue("ref"))
	if err != nil {
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, proofView(proof))
}
