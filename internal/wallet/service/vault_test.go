package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

func TestVaultResolveSecretWithPIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000100", "4821", 0)

	seed, err := f.vault.ResolveSecret(ctx, account, "4821")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))

	derived, err := keyring.PublicAddress(seed)
	require.NoError(t, err)
	require.Equal(t, account.PublicAddress, derived)
}

func TestVaultResolveSecretDefaultCredential(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000101", "", 0)
	require.False(t, account.HasPIN())

	seed, err := f.vault.ResolveSecret(ctx, account, "")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))
}

func TestVaultResolveSecretFallsBackToDefault(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// Legacy drift: ciphertext still under the default credential while a
	// PIN hash is already on file.
	account := f.onboard(t, "61400000102", "", 0)
	hash, err := keyring.HashPIN("9173")
	require.NoError(t, err)
	require.NoError(t, f.store.Accounts().UpdateEncryptedSecret(ctx, account.ID, account.EncryptedSecret, &hash))

	drifted := f.reload(t, account.ID)
	require.True(t, drifted.HasPIN())

	seed, err := f.vault.ResolveSecret(ctx, drifted, "9173")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))
}

func TestVaultResolveSecretWrongPIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000103", "4821", 0)

	_, err := f.vault.ResolveSecret(ctx, account, "0000")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)

	_, err = f.vault.ResolveSecret(ctx, account, "")
	require.ErrorIs(t, err, domain.ErrVaultLocked)
}

func TestVaultResolveSecretGarbageCiphertext(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000104", "", 0)
	require.NoError(t, f.store.Accounts().UpdateEncryptedSecret(ctx, account.ID, []byte("not a ciphertext"), nil))

	_, err := f.vault.ResolveSecret(ctx, f.reload(t, account.ID), "")
	require.ErrorIs(t, err, domain.ErrVaultLocked)
}

func TestVaultRekey(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000105", "1111", 0)

	originalSeed, err := f.vault.ResolveSecret(ctx, account, "1111")
	require.NoError(t, err)

	require.NoError(t, f.vault.Rekey(ctx, account, "1111", "2222"))

	rekeyed := f.reload(t, account.ID)
	require.NotEqual(t, account.EncryptedSecret, rekeyed.EncryptedSecret)

	// Old PIN no longer opens the vault; the new one yields the same seed.
	_, err = f.vault.ResolveSecret(ctx, rekeyed, "1111")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)

	seed, err := f.vault.ResolveSecret(ctx, rekeyed, "2222")
	require.NoError(t, err)
	require.Equal(t, originalSeed, seed)
}

func TestVaultRekeyFromDefaultCredential(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000106", "", 0)
	require.NoError(t, f.vault.Rekey(ctx, account, "", "7777"))

	rekeyed := f.reload(t, account.ID)
	require.True(t, rekeyed.HasPIN())

	seed, err := f.vault.ResolveSecret(ctx, rekeyed, "7777")
	require.NoError(t, err)
	require.True(t, keyring.ValidSeed(seed))
}

func TestVaultRekeyRejectsBadNewPIN(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	account := f.onboard(t, "61400000107", "1111", 0)
	err := f.vault.Rekey(context.Background(), account, "1111", "12")
	require.ErrorIs(t, err, domain.ErrInvalidPIN)

	// Stored ciphertext untouched.
	require.Equal(t, account.EncryptedSecret, f.reload(t, account.ID).EncryptedSecret)
}
