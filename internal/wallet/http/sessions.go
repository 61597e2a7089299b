package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/chillarlabs/chillar/internal/wallet/service"
	"github.com/chillarlabs/chillar/pkg/httpx"
	"github.com/chillarlabs/chillar/pkg/slogx"
	"github.com/chillarlabs/chillar/pkg/walletsdk"
)

// SessionsHandler handles wallet session unlocks.
type SessionsHandler struct {
	SessionService *service.SessionService
}

// HandleUnlock handles POST /v1/sessions
//
//	@Summary		Unlock a wallet session
//	@Description	Verifies the PIN (or a device authenticator code) and mints a short-lived session token.
//	@Description	Failed attempts are indistinguishable: the response never says which factor failed.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		walletsdk.SessionRequest	true	"Unlock request"
//	@Success		201		{object}	walletsdk.SessionResponse	"Minted session"
//	@Failure		400		{object}	walletsdk.ErrorResponse		"Malformed request"
//	@Failure		401		{object}	walletsdk.ErrorResponse		"Authentication failed"
//	@Router			/v1/sessions [post].
func (h *SessionsHandler) HandleUnlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req walletsdk.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Identity == "" {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	var (
		result service.SessionResult
		err    error
	)
	if req.Code != "" {
		result, err = h.SessionService.UnlockWithDevice(ctx, req.Identity, req.Code)
	} else {
		result, err = h.SessionService.UnlockWithPIN(ctx, req.Identity, req.PIN)
	}
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			log.Warn("unlock rejected", "identity", req.Identity)
			walletsdk.ErrAuthFailed.WriteError(w)
			return
		}
		log.Error("unlock failed", "err", err)
		walletsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, walletsdk.SessionResponse{
		AccountID: result.AccountID,
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}
