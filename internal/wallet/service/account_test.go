package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

func TestOnboardWithPIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	account := f.onboard(t, "61400000600", "4821", 500)

	require.True(t, account.HasPIN())
	require.NotEqual(t, "4821", *account.PINHash) // never stored in clear
	require.NoError(t, keyring.VerifyPIN("4821", *account.PINHash))
	require.Equal(t, int64(500), account.DailyLimit)
	require.NotEqual(t, account.PublicAddress, account.SavingsAddress)
	require.NotEmpty(t, account.EncryptedSecret)
}

func TestOnboardWithoutPIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	account := f.onboard(t, "61400000601", "", 0)
	require.False(t, account.HasPIN())

	// The seed must still resolve through the default credential.
	seed, err := f.vault.ResolveSecret(context.Background(), account, "")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))
}

func TestOnboardRejectsDuplicateIdentity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.onboard(t, "61400000602", "", 0)
	_, err := f.accounts.Onboard(context.Background(), "61400000602", "", 0)
	require.ErrorIs(t, err, ErrIdentityTaken)
}

func TestOnboardValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Onboard(ctx, "", "", 0)
	require.Error(t, err)

	_, err = f.accounts.Onboard(ctx, "61400000603", "12", 0)
	require.ErrorIs(t, err, domain.ErrInvalidPIN)

	_, err = f.accounts.Onboard(ctx, "61400000603", "", -1)
	require.Error(t, err)
}

func TestChangePIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000604", "1111", 0)

	require.NoError(t, f.accounts.ChangePIN(ctx, account.ID, "1111", "9999"))

	updated := f.reload(t, account.ID)
	require.NoError(t, keyring.VerifyPIN("9999", *updated.PINHash))

	seed, err := f.vault.ResolveSecret(ctx, updated, "9999")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))
}

func TestSetDailyLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000605", "", 100)

	require.NoError(t, f.accounts.SetDailyLimit(ctx, account.ID, 0))
	require.True(t, f.reload(t, account.ID).Unlimited())

	require.Error(t, f.accounts.SetDailyLimit(ctx, account.ID, -5))
	require.ErrorIs(t, f.accounts.SetDailyLimit(ctx, "missing", 10), ErrAccountNotFound)
}
