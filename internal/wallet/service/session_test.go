package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/pkg/jwtx"
)

func newSessionFixture(t *testing.T) (*fixture, *SessionService, *AuthenticatorService) {
	t.Helper()
	f := newFixture(t)

	keypair, err := jwtx.NewKeypair("test-key", "chillar-test")
	require.NoError(t, err)

	authenticator := &AuthenticatorService{Store: f.store, Issuer: "chillar-test"}
	sessions := &SessionService{
		Accounts:      f.accounts,
		Authenticator: authenticator,
		Signer:        keypair,
		Issuer:        "chillar-test",
		TTL:           5 * time.Minute,
	}
	return f, sessions, authenticator
}

func TestUnlockWithPIN(t *testing.T) {
	t.Parallel()
	f, sessions, _ := newSessionFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000500", "4821", 0)

	result, err := sessions.UnlockWithPIN(ctx, account.Identity, "4821")
	require.NoError(t, err)
	require.Equal(t, account.ID, result.AccountID)
	require.NotEmpty(t, result.Token)

	claims, err := sessions.Signer.(*jwtx.Keypair).Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.Subject)
	require.Equal(t, account.Identity, claims.Identity)
	require.Equal(t, []string{"pin"}, claims.AMR)
}

func TestUnlockWithWrongPIN(t *testing.T) {
	t.Parallel()
	f, sessions, _ := newSessionFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000501", "4821", 0)

	_, err := sessions.UnlockWithPIN(ctx, account.Identity, "0000")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = sessions.UnlockWithPIN(ctx, "61400999999", "4821")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUnlockDefaultCredentialAccount(t *testing.T) {
	t.Parallel()
	f, sessions, _ := newSessionFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000502", "", 0)

	result, err := sessions.UnlockWithPIN(ctx, account.Identity, "")
	require.NoError(t, err)

	claims, err := sessions.Signer.(*jwtx.Keypair).Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, []string{"default"}, claims.AMR)
}

func TestTOTPEnrollVerifyUnlock(t *testing.T) {
	t.Parallel()
	f, sessions, authenticator := newSessionFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000503", "4821", 0)

	enrollment, err := authenticator.Enroll(ctx, account)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.QRCodeURL, "chillar-test")

	// The secret is not persisted until the device proves it.
	require.Nil(t, f.reload(t, account.ID).TOTPSecret)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, authenticator.Verify(ctx, account, code))

	enrolled := f.reload(t, account.ID)
	require.NotNil(t, enrolled.TOTPSecret)
	require.Equal(t, enrollment.Secret, *enrolled.TOTPSecret)

	// Device assertion now unlocks a session.
	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	result, err := sessions.UnlockWithDevice(ctx, account.Identity, code)
	require.NoError(t, err)

	claims, err := sessions.Signer.(*jwtx.Keypair).Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, []string{"otp"}, claims.AMR)
}

func TestTOTPVerifyRejectsBadCode(t *testing.T) {
	t.Parallel()
	f, _, authenticator := newSessionFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000504", "", 0)

	_, err := authenticator.Enroll(ctx, account)
	require.NoError(t, err)

	require.ErrorIs(t, authenticator.Verify(ctx, account, "000000"), ErrInvalidTOTPCode)
	require.Nil(t, f.reload(t, account.ID).TOTPSecret)
}

func TestTOTPEnrollmentExpires(t *testing.T) {
	t.Parallel()
	f, _, _ := newSessionFixture(t)
	ctx := context.Background()

	authenticator := &AuthenticatorService{Store: f.store, Issuer: "chillar-test", EnrollTTL: -time.Minute}
	account := f.onboard(t, "61400000505", "", 0)

	enrollment, err := authenticator.Enroll(ctx, account)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.ErrorIs(t, authenticator.Verify(ctx, account, code), ErrEnrollmentExpired)

	// The expired challenge is gone; a retry needs a fresh enrollment.
	require.ErrorIs(t, authenticator.Verify(ctx, account, code), ErrEnrollmentNotFound)
}

func TestSweepExpiredEnrollments(t *testing.T) {
	t.Parallel()
	f, _, _ := newSessionFixture(t)
	ctx := context.Background()

	authenticator := &AuthenticatorService{Store: f.store, Issuer: "chillar-test", EnrollTTL: time.Minute}

	a := f.onboard(t, "61400000506", "", 0)
	b := f.onboard(t, "61400000507", "", 0)

	_, err := authenticator.Enroll(ctx, a)
	require.NoError(t, err)
	_, err = authenticator.Enroll(ctx, b)
	require.NoError(t, err)

	require.Equal(t, 0, authenticator.SweepExpired(time.Now()))
	require.Equal(t, 2, authenticator.SweepExpired(time.Now().Add(2*time.Minute)))
}

func TestAssertRequiresEnrollment(t *testing.T) {
	t.Parallel()
	f, _, authenticator := newSessionFixture(t)

	account := f.onboard(t, "61400000508", "", 0)
	err := authenticator.Assert(context.Background(), account, "123456")
	require.ErrorIs(t, err, ErrDeviceNotEnrolled)
}
