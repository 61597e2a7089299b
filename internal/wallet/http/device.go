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

// DeviceHandler handles device authenticator (TOTP) enrollment.
type DeviceHandler struct {
	AccountService       *service.AccountService
	AuthenticatorService *service.AuthenticatorService
}

// HandleEnroll handles POST /v1/device/enroll
//
//	@Summary		Start device authenticator enrollment
//	@Description	Generates a TOTP secret for the session account. The secret is only persisted
//	@Description	once the device proves it with a valid code via /v1/device/verify.
//	@Tags			Device
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	walletsdk.DeviceEnrollResponse	"Enrollment challenge"
//	@Failure		400	{object}	walletsdk.ErrorResponse			"Already enrolled"
//	@Failure		401	{object}	walletsdk.ErrorResponse			"Invalid or missing session token"
//	@Router			/v1/device/enroll [post].
func (h *DeviceHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	account, err := h.AccountService.Get(ctx, accountID)
	if err != nil {
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	enrollment, err := h.AuthenticatorService.Enroll(ctx, account)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyEnrolled) {
			httpx.WriteError(w, http.StatusBadRequest, walletsdk.ErrorCodeAlreadyEnrolled,
				"A device authenticator is already enrolled")
			return
		}
		log.Error("enrollment failed", "account_id", accountID, "err", err)
		walletsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, walletsdk.DeviceEnrollResponse{
		Secret:    enrollment.Secret,
		QRCodeURL: enrollment.QRCodeURL,
		ExpiresAt: enrollment.ExpiresAt.Format(time.RFC3339),
	})
}

// HandleVerify handles POST /v1/device/verify
//
//	@Summary		Complete device authenticator enrollment
//	@Description	Confirms the pending enrollment with the device's first TOTP code and persists the secret.
//	@Tags			Device
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	walletsdk.DeviceVerifyRequest	true	"First device code"
//	@Success		204		"Enrollment complete"
//	@Failure		400		{object}	walletsdk.ErrorResponse	"Bad code, expired or missing challenge"
//	@Failure		401		{object}	walletsdk.ErrorResponse	"Invalid or missing session token"
//	@Router			/v1/device/verify [post].
func (h *DeviceHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := requireOwnAccount(w, r)
	if !ok {
		return
	}

	var req walletsdk.DeviceVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		walletsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	account, err := h.AccountService.Get(ctx, accountID)
	if err != nil {
		walletsdk.ErrNotFound.WriteError(w)
		return
	}

	if err := h.AuthenticatorService.Verify(ctx, account, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrEnrollmentNotFound):
			httpx.WriteError(w, http.StatusBadRequest, walletsdk.ErrorCodeEnrollmentMissing,
				"No pending enrollment; start with /v1/device/enroll")
		case errors.Is(err, service.ErrEnrollmentExpired):
			httpx.WriteError(w, http.StatusBadRequest, walletsdk.ErrorCodeEnrollmentExpired,
				"The enrollment challenge expired; start again")
		case errors.Is(err, service.ErrInvalidTOTPCode):
			httpx.WriteError(w, http.StatusBadRequest, walletsdk.ErrorCodeInvalidRequest,
				"The code did not match the pending enrollment")
		default:
			log.Error("enrollment verify failed", "account_id", accountID, "err", err)
			walletsdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("device enrolled", "account_id", accountID)
	w.WriteHeader(http.StatusNoContent)
}
