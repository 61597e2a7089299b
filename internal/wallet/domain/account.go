package domain

import "time"

// Account is a wallet account keyed by a phone identity. The raw signing
// seed never appears here; only its ciphertext under the PIN-derived key is
// persisted.
type Account struct {
	ID              string
	Identity        string  // phone handle, unique
	PublicAddress   string  // ledger public key, derived from the seed
	SavingsAddress  string  // destination for round-up deposits
	EncryptedSecret []byte  // AES-GCM ciphertext of the encoded signing seed
	PINHash         *string // argon2 encoded; nil means default credential
	TOTPSecret      *string // device authenticator secret (nullable, base32 encoded)

	SpendLimit

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPIN reports whether the account has set a PIN, as opposed to still
// running on the well-known default credential.
func (a Account) HasPIN() bool {
	return a.PINHash != nil && *a.PINHash != ""
}
