package wallet_test

import (
	"testing"

	"github.com/chillarlabs/chillar/pkg/walletsdk"
	"github.com/stretchr/testify/require"
)

// TestSessionUnlockIsRateLimited verifies the strict profile throttles
// repeated unlock attempts. This guards the 4-digit PIN space against
// brute force, so it runs against the production defaults.
func TestSessionUnlockIsRateLimited(t *testing.T) {
	baseURL, cleanup := setupWalletContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := walletsdk.NewClient(baseURL)
	account := onboardAccount(t, client, testPIN, 0)

	var limited bool
	for i := 0; i < 20; i++ {
		_, err := client.UnlockWithPIN(t.Context(), account.Identity, "1111")
		require.Error(t, err)

		var apiErr *walletsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		if apiErr.Code == walletsdk.ErrorCodeRateLimited {
			limited = true
			break
		}
		require.Equal(t, walletsdk.ErrorCodeAuthFailed, apiErr.Code)
	}

	require.True(t, limited, "Repeated unlock attempts should hit the rate limit")
}
