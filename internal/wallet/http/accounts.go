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

// AccountsHandler handles account onboarding and settings.
type AccountsHandler struct {
	AccountService *service.AccountService
}

func accountView(a domain.Account) walletsdk.AccountResponse {
	return walletsdk.AccountResponse{
		ID:             a.ID,
		Identity:       a.Identity,
		PublicAddress:  a.PublicAddress,
		SavingsAddress: a.SavingsAddress,
		DailyLimit:     a.DailyLimit,
		SpentToday:     a.SpentToday,
		LastSpendDate:  a.LastSpendDate,
		HasPIN:         a.HasPIN(),
		DeviceEnrolled: a.TOTPSecret != nil && *a.TOTPSecret != "",
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

// requireOwnAccount checks the path id against the session subject.
// Sessions act only as themselves; there is no admin surface.
func requireOwnAccount(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := httpx.AccountIDFromContext(r.Context())
	if accountID == "" {
		walletsdk.ErrInvalidToken.WriteError(w)
		return "", false
	}
	if id := r.PathValue("id"); id != "" && id != accountID {
		walletsdk.ErrNotFound.WriteError(w)
		return "", false
	}
	return accountID, true
}

// HandleOnboard handles POST /v1/accounts
//
//	@Summary		Create a wallet account
//	@Description	Creates an account for a phone identity, generating and encrypting a fresh signing seed.
//	@Description	Accounts created without a PIN run on the documented default credential until one is set.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		walletsdk.OnboardRequest	true	"Onboarding request"
//	@Success		201		{object}	walletsdk.AccountResponse	"Created account"
//	@Failure		400		{object}	walletsdk.ErrorResponse		"Malformed request"
//	@Failure		409		{object}	walletsdk.ErrorResponse		"Identity already registered"
//	@Router			/v1/accounts [post].
func (h *AccountsHandler) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req walletsdk.OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	account, err := h.AccountService.Onboard(ctx, req.Identity, req.PIN, req.DailyLimit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityTaken):
			walletsdk.ErrIdentityTaken.WriteError(w)
		case errors.Is(err, domain.ErrInvalidPIN):
			walletsdk.ErrInvalidPIN.WriteError(w)
		default:
			log.Warn("onboarding rejected", "err", err)
			walletsdk.ErrInvalidRequest.WriteError(w)
		}
		return
	}

	log.Info("account onboarded", "account_id", account.ID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, accountView(account))
}

// HandleGet handles GET /v1/accounts/{id}
//
//	@Summary		Fetch the session account
//	@Description	Returns the account's public view. Secret material is never included.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	walletsdk.AccountResponse	"Account"
//	@Failure		401	{object}	walletsdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		404	{object}	walletsdk.ErrorResponse		"Not the session's account"
//	@Router			/v1/accounts/{id} [get].
func (h *AccountsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	account, err := h.AccountService.Get(r.Context(), accountID)
	if err != nil {
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountView(account))
}

// HandleChangePIN handles POST /v1/accounts/{id}/pin
//
//	@Summary		Change the vault PIN
//	@Description	Decrypts the seed under the old credential and re-encrypts it under the new PIN atomically.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	walletsdk.ChangePINRequest	true	"PIN change request"
//	@Success		204		"PIN changed"
//	@Failure		401		{object}	walletsdk.ErrorResponse	"Invalid or missing session token"
//	@Failure		403		{object}	walletsdk.ErrorResponse	"Vault locked or PIN rejected"
//	@Router			/v1/accounts/{id}/pin [post].
func (h *AccountsHandler) HandleChangePIN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var req walletsdk.ChangePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AccountService.ChangePIN(ctx, accountID, req.OldPIN, req.NewPIN); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPIN):
			walletsdk.ErrInvalidPIN.WriteError(w)
		case errors.Is(err, domain.ErrVaultLocked):
			walletsdk.ErrVaultLocked.WriteError(w)
		default:
			log.Error("pin change failed", "account_id", accountID, "err", err)
			walletsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("pin changed", "account_id", accountID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetLimit handles POST /v1/accounts/{id}/limit
//
//	@Summary		Set the account's daily spend limit
//	@Description	Sets the daily ceiling in minor currency units. Zero removes the limit.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	walletsdk.LimitRequest	true	"Limit request"
//	@Success		204		"Limit updated"
//	@Failure		400		{object}	walletsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	walletsdk.ErrorResponse	"Invalid or missing session token"
//	@Router			/v1/accounts/{id}/limit [post].
func (h *AccountsHandler) HandleSetLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var req walletsdk.LimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AccountService.SetDailyLimit(ctx, accountID, req.DailyLimit); err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			walletsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Warn("limit update rejected", "account_id", accountID, "err", err)
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
