package keyring_test

import (
	"testing"

	"github.com/chillarlabs/chillar/pkg/keyring"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	t.Parallel()

	k1 := keyring.DeriveKey("+919900112233", "4215")
	k2 := keyring.DeriveKey("+919900112233", "4215")
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)
}

func TestDeriveKeyDistinguishesInputs(t *testing.T) {
	t.Parallel()

	base := keyring.DeriveKey("+919900112233", "4215")
	require.NotEqual(t, base, keyring.DeriveKey("+919900112233", "4216"))
	require.NotEqual(t, base, keyring.DeriveKey("+919900112234", "4215"))
}

func TestDeriveKeyNoEmptyCredentialShortcut(t *testing.T) {
	t.Parallel()

	// An empty credential is still real key material, not a shortcut to some
	// fixed key. Callers substitute DefaultCredential explicitly.
	empty := keyring.DeriveKey("+919900112233", "")
	def := keyring.DeriveKey("+919900112233", keyring.DefaultCredential)
	require.NotEqual(t, empty, def)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	key := keyring.DeriveKey("+919900112233", "4215")
	plaintext := []byte("SABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRST")

	ciphertext, err := keyring.Encrypt(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ciphertext)

	got, err := keyring.Decrypt(ciphertext, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestDecryptWrongKeyFailsSafely(t *testing.T) {
	t.Parallel()

	key := keyring.DeriveKey("+919900112233", "4215")
	ciphertext, err := keyring.Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	wrong := keyring.DeriveKey("+919900112233", "0000")
	_, err = keyring.Decrypt(ciphertext, wrong)
	require.ErrorIs(t, err, keyring.ErrDecryptFailed)
}

func TestDecryptMalformedInput(t *testing.T) {
	t.Parallel()

	key := keyring.DeriveKey("+919900112233", "4215")

	_, err := keyring.Decrypt(nil, key)
	require.ErrorIs(t, err, keyring.ErrDecryptFailed)

	_, err = keyring.Decrypt([]byte("short"), key)
	require.ErrorIs(t, err, keyring.ErrDecryptFailed)

	_, err = keyring.Decrypt([]byte("not a real ciphertext at all, just bytes"), key)
	require.ErrorIs(t, err, keyring.ErrDecryptFailed)
}

func TestGenerateSeedFormat(t *testing.T) {
	t.Parallel()

	seed, err := keyring.GenerateSeed()
	require.NoError(t, err)
	require.Len(t, seed, keyring.SeedLength)
	require.Equal(t, byte(keyring.SeedPrefix), seed[0])
	require.True(t, keyring.ValidSeed(seed))
}

func TestValidSeedRejectsGarbage(t *testing.T) {
	t.Parallel()

	require.False(t, keyring.ValidSeed(""))
	require.False(t, keyring.ValidSeed("S"))
	require.False(t, keyring.ValidSeed("XABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRS"))
	// Right length and prefix, invalid base32 payload.
	require.False(t, keyring.ValidSeed("S!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!"))
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	seed, err := keyring.GenerateSeed()
	require.NoError(t, err)

	addr, err := keyring.PublicAddress(seed)
	require.NoError(t, err)
	require.Equal(t, byte(keyring.AddressPrefix), addr[0])

	msg := []byte("txn-ref|150|merchant-42")
	sig, err := keyring.Sign(seed, msg)
	require.NoError(t, err)

	require.True(t, keyring.VerifySignature(addr, msg, sig))
	require.False(t, keyring.VerifySignature(addr, []byte("tampered"), sig))

	other, err := keyring.GenerateSeed()
	require.NoError(t, err)
	otherAddr, err := keyring.PublicAddress(other)
	require.NoError(t, err)
	require.False(t, keyring.VerifySignature(otherAddr, msg, sig))
}

func TestValidPIN(t *testing.T) {
	t.Parallel()

	require.True(t, keyring.ValidPIN("0000"))
	require.True(t, keyring.ValidPIN("4215"))
	require.False(t, keyring.ValidPIN("421"))
	require.False(t, keyring.ValidPIN("42156"))
	require.False(t, keyring.ValidPIN("42a5"))
	require.False(t, keyring.ValidPIN(""))
}

func TestGeneratePIN(t *testing.T) {
	t.Parallel()

	pin, err := keyring.GeneratePIN()
	require.NoError(t, err)
	require.True(t, keyring.ValidPIN(pin))
}

func TestHashAndVerifyPIN(t *testing.T) {
	t.Parallel()

	hash, err := keyring.HashPIN("4215")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$")
	require.NotContains(t, hash, "4215")

	require.NoError(t, keyring.VerifyPIN("4215", hash))
	require.ErrorIs(t, keyring.VerifyPIN("0000", hash), keyring.ErrPINMismatch)
}

func TestVerifyPINMalformedHash(t *testing.T) {
	t.Parallel()

	require.Error(t, keyring.VerifyPIN("4215", "not-a-phc-string"))
	require.Error(t, keyring.VerifyPIN("4215", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"))
}
