package walletsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the wallet-core service. It exposes the unauthenticated
// operations and creates Sessions for everything token-gated.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a wallet service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request; token is empty for unauthenticated
// calls.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a response into target, mapping non-expected statuses
// onto typed *APIError values.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, body)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Onboard creates a wallet account.
func (c *Client) Onboard(ctx context.Context, req OnboardRequest) (AccountResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/accounts", "", req)
	if err != nil {
		return AccountResponse{}, err
	}
	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return AccountResponse{}, err
	}
	return out, nil
}

// UnlockWithPIN unlocks a wallet session with a PIN and returns an
// authenticated Session.
func (c *Client) UnlockWithPIN(ctx context.Context, identity, pin string) (*Session, error) {
	return c.unlock(ctx, SessionRequest{Identity: identity, PIN: pin})
}

// UnlockWithDevice unlocks a wallet session with a device authenticator
// code.
func (c *Client) UnlockWithDevice(ctx context.Context, identity, code string) (*Session, error) {
	return c.unlock(ctx, SessionRequest{Identity: identity, Code: code})
}

func (c *Client) unlock(ctx context.Context, req SessionRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", "", req)
	if err != nil {
		return nil, err
	}
	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &Session{
		client:    c,
		accountID: out.AccountID,
		token:     out.Token,
	}, nil
}

// GetProof fetches a stored payment proof by settlement reference. Public:
// payout verifiers call this without a wallet session.
func (c *Client) GetProof(ctx context.Context, settlementRef string) (ProofResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/proofs/"+settlementRef, "", nil)
	if err != nil {
		return ProofResponse{}, err
	}
	var out ProofResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return ProofResponse{}, err
	}
	return out, nil
}

// Livez probes the liveness endpoint.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", "", nil)
	if err != nil {
		return HealthResponse{}, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}

// Readyz probes the readiness endpoint.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", "", nil)
	if err != nil {
		return HealthResponse{}, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return out, nil
}
