package walletsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chillarlabs/chillar/pkg/httpx"
)

// Error codes used across the wallet API.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeAuthFailed        = "authentication_failed"
	ErrorCodeVaultLocked       = "vault_locked"
	ErrorCodeInvalidPIN        = "invalid_pin"
	ErrorCodeLimitExceeded     = "limit_exceeded"
	ErrorCodeDelegationDenied  = "delegation_unauthorized"
	ErrorCodeSettlementFailed  = "settlement_failed"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeServerError       = "server_error"
	ErrorCodeRateLimited       = "rate_limit_exceeded"
	ErrorCodeIdentityTaken     = "identity_taken"
	ErrorCodeDeviceNotEnrolled = "device_not_enrolled"
	ErrorCodeEnrollmentExpired = "enrollment_expired"
	ErrorCodeEnrollmentMissing = "enrollment_not_found"
	ErrorCodeAlreadyEnrolled   = "already_enrolled"
)

// APIError is a typed wallet API error. Both the server (to write it) and
// the client (after parsing a response) use this shape.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Remaining is set on limit_exceeded errors.
	Remaining *int64
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on the error code so callers can compare against the
// predefined errors regardless of description.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes the error as the standard JSON envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Remaining:        e.Remaining,
	})
}

// Predefined API errors. Handlers write these; the SDK parses responses
// back into them.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "The request is missing a required parameter or is malformed",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "The wallet session token is missing, expired, or invalid",
	}

	ErrAuthFailed = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuthFailed,
		Description: "Authentication failed",
	}

	ErrVaultLocked = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeVaultLocked,
		Description: "Secret recovery failed; re-authenticate and try again",
	}

	ErrInvalidPIN = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeInvalidPIN,
		Description: "The PIN is malformed or does not match",
	}

	ErrDelegationDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeDelegationDenied,
		Description: "The delegation is missing, revoked, or not resolvable",
	}

	ErrSettlementFailed = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeSettlementFailed,
		Description: "The settlement service rejected or failed the transfer",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "The requested resource does not exist",
	}

	ErrIdentityTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeIdentityTaken,
		Description: "An account already exists for this identity",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "An unexpected error occurred",
	}
)

// LimitExceededError builds the typed limit refusal carrying the remaining
// budget.
func LimitExceededError(remaining int64) *APIError {
	return &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeLimitExceeded,
		Description: "The daily spend limit would be exceeded",
		Remaining:   &remaining,
	}
}

// parseErrorResponse turns a non-2xx response body into a typed *APIError.
func parseErrorResponse(statusCode int, body []byte) error {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == "" {
		return &APIError{
			StatusCode:  statusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected response (status %d)", statusCode),
		}
	}
	return &APIError{
		StatusCode:  statusCode,
		Code:        envelope.Error,
		Description: envelope.ErrorDescription,
		Remaining:   envelope.Remaining,
	}
}
