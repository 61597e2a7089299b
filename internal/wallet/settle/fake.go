package settle

import (
	"context"
	"sync"

	"github.com/chillarlabs/chillar/pkg/idx"
	"github.com/chillarlabs/chillar/pkg/keyring"
)

// Fake is an in-memory Service used by service and handler tests. Failures
// can be injected per destination or for the next submission only.
type Fake struct {
	mu        sync.Mutex
	transfers map[string]Transfer // ref -> transfer
	byKey     map[string]string   // idempotency key -> ref

	failNext       error
	failByDest     map[string]error
	submittedOrder []string
}

func NewFake() *Fake {
	return &Fake{
		transfers:  make(map[string]Transfer),
		byKey:      make(map[string]string),
		failByDest: make(map[string]error),
	}
}

// FailNext makes the next SubmitTransfer call return err.
func (f *Fake) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = err
}

// FailDestination makes every transfer to dest return err.
func (f *Fake) FailDestination(dest string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failByDest[dest] = err
}

// Submitted returns the transfers settled so far in submission order.
func (f *Fake) Submitted() []Transfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Transfer, 0, len(f.submittedOrder))
	for _, ref := range f.submittedOrder {
		out = append(out, f.transfers[ref])
	}
	return out
}

func (f *Fake) SubmitTransfer(ctx context.Context, encodedSeed string, t Transfer) (string, error) {
	// Same signing path as the real client, so bad seeds fail here too.
	if _, err := keyring.Sign(encodedSeed, challenge(t)); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return "", err
	}
	if err, ok := f.failByDest[t.Destination]; ok {
		return "", err
	}
	if ref, ok := f.byKey[t.IdempotencyKey]; ok && t.IdempotencyKey != "" {
		return ref, nil
	}

	ref := "TX" + idx.New().String()
	f.transfers[ref] = t
	if t.IdempotencyKey != "" {
		f.byKey[t.IdempotencyKey] = ref
	}
	f.submittedOrder = append(f.submittedOrder, ref)
	return ref, nil
}

func (f *Fake) ConfirmTransfer(ctx context.Context, ref string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.transfers[ref]
	return ok, nil
}

func (f *Fake) LookupTransfer(ctx context.Context, idempotencyKey string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref, ok := f.byKey[idempotencyKey]
	return ref, ok, nil
}

func (f *Fake) Healthy(ctx context.Context) error { return nil }
