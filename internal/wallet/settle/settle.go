// Package settle is the boundary to the external settlement service. The
// wallet core signs a transfer payload locally and submits it; consensus,
// broadcast and fee handling all live on the other side of this interface.
package settle

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the settlement service could not be reached or
// answered with a transport-level failure. The caller surfaces it wrapped in
// the payment error taxonomy and never retries automatically.
var ErrUnavailable = errors.New("settle: settlement service unavailable")

// ErrRejected reports that the settlement service understood the transfer
// and refused it (bad destination, insufficient funds upstream, replayed
// idempotency key).
var ErrRejected = errors.New("settle: transfer rejected")

// Transfer is one debit leg to be settled. IdempotencyKey lets the service
// deduplicate retried submissions after an ambiguous timeout.
type Transfer struct {
	SenderAddress  string
	Destination    string
	Amount         int64
	Note           string
	IdempotencyKey string
}

// Service submits signed transfers for settlement. Implementations must be
// safe for concurrent use.
type Service interface {
	// SubmitTransfer signs the transfer with the provided encoded seed and
	// submits it, returning the settlement reference on success. The raw
	// seed is used only for signing and never leaves the process.
	SubmitTransfer(ctx context.Context, encodedSeed string, t Transfer) (string, error)

	// ConfirmTransfer reports whether a previously submitted transfer is
	// settled. Used after ambiguous timeouts before retrying a submission.
	ConfirmTransfer(ctx context.Context, ref string) (bool, error)

	// LookupTransfer resolves an idempotency key to the settlement
	// reference of a landed transfer. After a transport-ambiguous submit
	// failure this is the only way to learn whether the transfer went
	// through, since no reference was returned.
	LookupTransfer(ctx context.Context, idempotencyKey string) (string, bool, error)

	// Healthy probes the settlement service for the readiness endpoint.
	Healthy(ctx context.Context) error
}
