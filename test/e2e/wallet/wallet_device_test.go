package wallet_test

import (
	"testing"
	"time"

	"github.com/chillarlabs/chillar/pkg/walletsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

// generateTOTP generates a TOTP code for the given secret.
func generateTOTP(t *testing.T, secret string) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	return code
}

// TestDeviceEnrollmentFlow covers enroll, verify, and the authenticator
// unlock path end to end.
func TestDeviceEnrollmentFlow(t *testing.T) {
	baseURL, cleanup := setupWalletContainer(t)
	defer cleanup()

	client := walletsdk.NewClient(baseURL)
	account := onboardAccount(t, client, testPIN, 0)
	session := unlockSession(t, client, account.Identity, testPIN)

	enrollment, err := session.EnrollDevice(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.NotEmpty(t, enrollment.QRCodeURL)

	// The secret is not persisted until the device proves it.
	fetched, err := session.GetAccount(t.Context())
	require.NoError(t, err)
	require.False(t, fetched.DeviceEnrolled)

	err = session.VerifyDevice(t.Context(), generateTOTP(t, enrollment.Secret))
	require.NoError(t, err)

	fetched, err = session.GetAccount(t.Context())
	require.NoError(t, err)
	require.True(t, fetched.DeviceEnrolled)

	// Unlock with a fresh authenticator code instead of the PIN.
	deviceSession, err := client.UnlockWithDevice(t.Context(),
		account.Identity, generateTOTP(t, enrollment.Secret))
	require.NoError(t, err)
	require.Equal(t, account.ID, deviceSession.AccountID())
}

// TestDeviceVerifyRejectsBadCode verifies a wrong first code leaves the
// enrollment pending.
func TestDeviceVerifyRejectsBadCode(t *testing.T) {
	baseURL, cleanup := setupWalletContainer(t)
	defer cleanup()

	client := walletsdk.NewClient(baseURL)
	account := onboardAccount(t, client, testPIN, 0)
	session := unlockSession(t, client, account.Identity, testPIN)

	enrollment, err := session.EnrollDevice(t.Context())
	require.NoError(t, err)

	err = session.VerifyDevice(t.Context(), "000000")
	require.Error(t, err, "Wrong code should not complete enrollment")

	fetched, err := session.GetAccount(t.Context())
	require.NoError(t, err)
	require.False(t, fetched.DeviceEnrolled)

	// The pending challenge survives a bad code; the right one still works.
	err = session.VerifyDevice(t.Context(), generateTOTP(t, enrollment.Secret))
	require.NoError(t, err)
}

// TestDeviceUnlockWithoutEnrollment verifies code unlock fails for accounts
// that never enrolled.
func TestDeviceUnlockWithoutEnrollment(t *testing.T) {
	baseURL, cleanup := setupWalletContainer(t)
	defer cleanup()

	client := walletsdk.NewClient(baseURL)
	account := onboardAccount(t, client, testPIN, 0)

	_, err := client.UnlockWithDevice(t.Context(), account.Identity, "123456")
	assertAPIError(t, err, walletsdk.ErrorCodeAuthFailed, "Unenrolled device unlock")
}
