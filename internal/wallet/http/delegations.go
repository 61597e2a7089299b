package http

import (
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

// DelegationsHandler handles delegation grants and their lifecycle.
type DelegationsHandler struct {
	AccountService    *service.AccountService
	DelegationService *service.DelegationService
	VaultService      *service.VaultService
}

func delegationView(d domain.Delegation) walletsdk.DelegationResponse {
	return walletsdk.DelegationResponse{
		ID:            d.ID,
		DelegatorID:   d.DelegatorID,
		DelegateID:    d.DelegateID,
		DailyLimit:    d.DailyLimit,
		SpentToday:    d.SpentToday,
		LastSpendDate: d.LastSpendDate,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

// HandleGrant handles POST /v1/delegations
//
//	@Summary		Grant a spending delegation
//	@Description	Unlocks the session account's vault and re-encrypts its seed for the delegate.
//	@Description	Replaces any previous active grant for the same delegate.
//	@Tags			Delegations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		walletsdk.DelegationRequest		true	"Grant request"
//	@Success		201		{object}	walletsdk.DelegationResponse	"Created grant"
//	@Failure		400		{object}	walletsdk.ErrorResponse			"Malformed request"
//	@Failure		401		{object}	walletsdk.ErrorResponse			"Invalid or missing session token"
//	@Failure		403		{object}	walletsdk.ErrorResponse			"Vault locked or PIN rejected"
//	@Router			/v1/delegations [post].
func (h *DelegationsHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var req walletsdk.DelegationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DelegateID == "" {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	delegator, err := h.AccountService.Get(ctx, accountID)
	if err != nil {
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	// The grant re-shares the delegator's seed, so the vault must open.
	seed, err := h.VaultService.ResolveSecret(ctx, delegator, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPIN):
			walletsdk.ErrInvalidPIN.WriteError(w)
		case errors.Is(err, domain.ErrVaultLocked):
			walletsdk.ErrVaultLocked.WriteError(w)
		default:
			log.Error("vault unlock failed", "account_id", accountID, "err", err)
			walletsdk.ErrServerError.WriteError(w)
		}
		return
	}

	// The delegate must exist; a grant to an unknown account is undeliverable.
	if _, err := h.AccountService.Get(ctx, req.DelegateID); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	grant, err := h.DelegationService.Grant(ctx, seed, accountID, req.DelegateID, req.DailyLimit)
	if err != nil {
		log.Warn("grant rejected", "account_id", accountID, "err", err)
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	log.Info("delegation granted", "delegation_id", grant.ID, "delegator_id", accountID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, delegationView(grant))
}

// HandleList handles GET /v1/delegations
//
//	@Summary		List the session account's delegations
//	@Description	Returns active grants in both directions: given out and received.
//	@Tags			Delegations
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	walletsdk.DelegationListResponse	"Grants"
//	@Failure		401	{object}	walletsdk.ErrorResponse				"Invalid or missing session token"
//	@Router			/v1/delegations [get].
func (h *DelegationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	granted, err := h.DelegationService.ListGranted(ctx, accountID)
	if err != nil {
		walletsdk.ErrServerError.WriteError(w)
		return
	}
	received, err := h.DelegationService.ListReceived(ctx, accountID)
	if err != nil {
		walletsdk.ErrServerError.WriteError(w)
		return
	}

	out := walletsdk.DelegationListResponse{
		Granted:  make([]walletsdk.DelegationResponse, 0, len(granted)),
		Received: make([]walletsdk.DelegationResponse, 0, len(received)),
	}
	for _, d := range granted {
		out.Granted = append(out.Granted, delegationView(d))
	}
	for _, d := range received {
		out.Received = append(out.Received, delegationView(d))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// loadOwnGrant fetches a delegation and checks the session account is its
// delegator.
func (h *DelegationsHandler) loadOwnGrant(w http.ResponseWriter, r *http.Request, accountID string) (domain.Delegation, bool) {
	grant, err := h.DelegationService.Store.Delegations().GetByID(r.Context(), r.PathValue("id"))
	if err != nil || grant.DelegatorID != accountID {
		walletsdk.ErrNotFound.WriteError(w)
		return domain.Delegation{}, false
	}
	return grant, true
}

// HandleRevoke handles DELETE /v1/delegations/{id}
//
//	@Summary		Revoke a delegation
//	@Description	Deactivates a grant the session account gave out. Takes effect immediately.
//	@Tags			Delegations
//	@Security		BearerAuth
//	@Success		204	"Revoked"
//	@Failure		401	{object}	walletsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		404	{object}	walletsdk.ErrorResponse	"Unknown grant or not the delegator"
//	@Router			/v1/delegations/{id} [delete].
func (h *DelegationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	grant, ok := h.loadOwnGrant(w, r, accountID)
	if !ok {
		return
	}

	if err := h.DelegationService.Revoke(ctx, grant.ID); err != nil {
		// Already revoked reads as gone.
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	log.Info("delegation revoked", "delegation_id", grant.ID, "delegator_id", accountID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateLimit handles POST /v1/delegations/{id}/limit
//
//	@Summary		Update a delegation's daily limit
//	@Tags			Delegations
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	walletsdk.LimitRequest	true	"Limit request"
//	@Success		204		"Limit updated"
//	@Failure		400		{object}	walletsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	walletsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		404		{object}	walletsdk.ErrorResponse	"Unknown grant or not the delegator"
//	@Router			/v1/delegations/{id}/limit [post].
func (h *DelegationsHandler) HandleUpdateLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	grant, ok := h.loadOwnGrant(w, r, accountID)
	if !ok {
		return
	}

	var req walletsdk.LimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.DelegationService.UpdateLimit(ctx, grant.ID, req.DailyLimit); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
