package settle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chillarlabs/chillar/pkg/keyring"
)

// Client is the HTTP implementation of Service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a settlement client for the given base URL.
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

type submitRequest struct {
	Sender         string `json:"sender"`
	Destination    string `json:"destination"`
	Amount         int64  `json:"amount"`
	Note           string `json:"note,omitempty"`
	IdempotencyKey string `json:"idempotency_key"`
	Signature      string `json:"signature"`
}

type submitResponse struct {
	Ref string `json:"ref"`
}

type statusResponse struct {
	Ref     string `json:"ref"`
	Settled bool   `json:"settled"`
}

// challenge produces the canonical byte string signed for a transfer. The
// settlement service re-derives the same string to verify ownership of the
// sender address.
func challenge(t Transfer) []byte {
	return []byte(t.SenderAddress + "|" + t.Destination + "|" +
		strconv.FormatInt(t.Amount, 10) + "|" + t.IdempotencyKey)
}

func (c *Client) SubmitTransfer(ctx context.Context, encodedSeed string, t Transfer) (string, error) {
	sig, err := keyring.Sign(encodedSeed, challenge(t))
	if err != nil {
		return "", fmt.Errorf("sign transfer: %w", err)
	}

	payload, err := json.Marshal(submitRequest{
		Sender:         t.SenderAddress,
		Destination:    t.Destination,
		Amount:         t.Amount,
		Note:           t.Note,
		IdempotencyKey: t.IdempotencyKey,
		Signature:      base64.StdEncoding.EncodeToString(sig),
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/v1/transfers"), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var out submitResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return "", err
	}
	if out.Ref == "" {
		return "", fmt.Errorf("%w: empty settlement ref", ErrRejected)
	}
	return out.Ref, nil
}

func (c *Client) ConfirmTransfer(ctx context.Context, ref string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/v1/transfers/"+ref), nil)
	if err != nil {
		return false, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return false, nil
	}

	var out statusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return false, err
	}
	return out.Settled, nil
}

func (c *Client) LookupTransfer(ctx context.Context, idempotencyKey string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/v1/transfers/by-key/"+idempotencyKey), nil)
	if err != nil {
		return "", false, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return "", false, nil
	}

	var out statusResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", false, err
	}
	if out.Ref == "" {
		return "", false, nil
	}
	return out.Ref, true, nil
}

func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/readyz"), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// decodeJSON decodes a JSON response into target, mapping non-expected
// statuses onto the package error sentinels.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != expectedStatus {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
