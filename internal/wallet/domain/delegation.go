package domain

import "time"

// Delegation grants one account restricted spending rights under another
// account's signing authority. SharedSecret is the delegator's signing seed
// encrypted under a key derived solely from the delegate's identity, so the
// delegate can resolve it without ever learning the delegator's PIN.
//
// At most one active row exists per (delegator, delegate) pair. Revocation
// flips Active off and must take effect immediately even though the old
// ciphertext stays on disk.
type Delegation struct {
	ID           string
	DelegatorID  string
	DelegateID   string
	SharedSecret []byte
	Active       bool

	SpendLimit

	CreatedAt time.Time
	UpdatedAt time.Time
}
