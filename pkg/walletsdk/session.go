package walletsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated wallet session. All calls carry the session's
// bearer token and act as the unlocked account.
type Session struct {
	client    *Client
	accountID string
	token     string
}

// AccountID returns the account this session acts as.
func (s *Session) AccountID() string { return s.accountID }

// Token returns the raw session token, for callers that persist it.
func (s *Session) Token() string { return s.token }

// NewSessionFromToken rebuilds a Session from a previously stored token.
func (c *Client) NewSessionFromToken(accountID, token string) *Session {
	return &Session{client: c, accountID: accountID, token: token}
}

// GetAccount fetches the session account's public view.
func (s *Session) GetAccount(ctx context.Context) (AccountResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/accounts/"+s.accountID, s.token, nil)
	if err != nil {
		return AccountResponse{}, err
	}
	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return AccountResponse{}, err
	}
	return out, nil
}

// ChangePIN rekeys the account's vault onto a new PIN.
func (s *Session) ChangePIN(ctx context.Context, oldPIN, newPIN string) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/accounts/"+s.accountID+"/pin", s.token,
		ChangePINRequest{OldPIN: oldPIN, NewPIN: newPIN})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// SetDailyLimit updates the account's own spend ceiling.
func (s *Session) SetDailyLimit(ctx context.Context, dailyLimit int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/accounts/"+s.accountID+"/limit", s.token,
		LimitRequest{DailyLimit: dailyLimit})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// EnrollDevice starts TOTP device enrollment.
func (s *Session) EnrollDevice(ctx context.Context) (DeviceEnrollResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/device/enroll", s.token, nil)
	if err != nil {
		return DeviceEnrollResponse{}, err
	}
	var out DeviceEnrollResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return DeviceEnrollResponse{}, err
	}
	return out, nil
}

// VerifyDevice completes TOTP enrollment with the device's first code.
func (s *Session) VerifyDevice(ctx context.Context, code string) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/device/verify", s.token,
		DeviceVerifyRequest{Code: code})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// GrantDelegation gives another account restricted spending rights under
// this account's signing authority.
func (s *Session) GrantDelegation(ctx context.Context, req DelegationRequest) (DelegationResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/delegations", s.token, req)
	if err != nil {
		return DelegationResponse{}, err
	}
	var out DelegationResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return DelegationResponse{}, err
	}
	return out, nil
}

// ListDelegations returns the grants this account has given and received.
func (s *Session) ListDelegations(ctx context.Context) (DelegationListResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/delegations", s.token, nil)
	if err != nil {
		return DelegationListResponse{}, err
	}
	var out DelegationListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return DelegationListResponse{}, err
	}
	return out, nil
}

// RevokeDelegation revokes a grant this account gave out.
func (s *Session) RevokeDelegation(ctx context.Context, delegationID string) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/v1/delegations/"+delegationID, s.token, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// UpdateDelegationLimit edits the daily ceiling of an active grant.
func (s *Session) UpdateDelegationLimit(ctx context.Context, delegationID string, dailyLimit int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/delegations/"+delegationID+"/limit", s.token,
		LimitRequest{DailyLimit: dailyLimit})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusNoContent)
}

// Pay executes a payment intent as the session account.
func (s *Session) Pay(ctx context.Context, req PaymentRequest) (PaymentReceiptResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/payments", s.token, req)
	if err != nil {
		return PaymentReceiptResponse{}, err
	}
	var out PaymentReceiptResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return PaymentReceiptResponse{}, err
	}
	return out, nil
}
