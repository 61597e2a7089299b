package jwtx_test

import (
	"testing"
	"time"

	"github.com/chillarlabs/chillar/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kp, err := jwtx.NewKeypair("session-1", "chillar-wallet")
	require.NoError(t, err)
	require.True(t, kp.Ready())

	claims := jwtx.NewSessionClaims(
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "+919900112233",
		[]string{"pin"}, "chillar-wallet",
		jwtx.DefaultSessionTTL, time.Now().UTC(),
	)

	token, err := kp.Sign(claims)
	require.NoError(t, err)

	got, err := kp.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", got.Subject)
	require.Equal(t, "+919900112233", got.Identity)
	require.Equal(t, []string{"pin"}, got.AMR)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	t.Parallel()

	kp1, err := jwtx.NewKeypair("session-1", "chillar-wallet")
	require.NoError(t, err)
	kp2, err := jwtx.NewKeypair("session-1", "chillar-wallet")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("acct", "id", []string{"pin"}, "chillar-wallet", time.Minute, time.Now().UTC())
	token, err := kp1.Sign(claims)
	require.NoError(t, err)

	_, err = kp2.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	kp, err := jwtx.NewKeypair("session-1", "chillar-wallet")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("acct", "id", []string{"pin"}, "chillar-wallet",
		time.Minute, time.Now().UTC().Add(-time.Hour))
	token, err := kp.Sign(claims)
	require.NoError(t, err)

	_, err = kp.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	kp, err := jwtx.NewKeypair("session-1", "chillar-wallet")
	require.NoError(t, err)

	_, err = kp.Verify("definitely.not.ajwt")
	require.Error(t, err)
}
