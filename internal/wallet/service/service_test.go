package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
	"github.com/chillarlabs/chillar/internal/wallet/settle"
	"github.com/chillarlabs/chillar/internal/wallet/store"
	"github.com/chillarlabs/chillar/internal/wallet/store/drivers/sqlite"
)

// newTestStore returns an in-memory migrated store for service tests.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// fixture wires the full service graph over one store and a settlement
// fake, the way the application does at startup.
type fixture struct {
	store       store.Store
	settlement  *settle.Fake
	accounts    *AccountService
	vault       *VaultService
	delegations *DelegationService
	spend       *SpendService
	attest      *AttestService
	payments    *PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := newTestStore(t)
	vault := &VaultService{Store: st}
	fake := settle.NewFake()
	spend := &SpendService{Store: st}

	f := &fixture{
		store:       st,
		settlement:  fake,
		accounts:    &AccountService{Store: st, Vault: vault},
		vault:       vault,
		delegations: &DelegationService{Store: st},
		spend:       spend,
		attest:      &AttestService{Store: st},
	}
	f.payments = &PaymentService{
		Store:       st,
		Vault:       vault,
		Delegations: f.delegations,
		Spend:       spend,
		Attest:      f.attest,
		Settlement:  fake,
		SplitPolicy: DefaultSplitPolicy,
	}
	return f
}

func (f *fixture) onboard(t *testing.T, identity, pin string, limit int64) domain.Account {
	t.Helper()
	account, err := f.accounts.Onboard(context.Background(), identity, pin, limit)
	require.NoError(t, err)
	return account
}

// reload fetches the persisted state of an account.
func (f *fixture) reload(t *testing.T, id string) domain.Account {
	t.Helper()
	account, err := f.store.Accounts().GetByID(context.Background(), id)
	require.NoError(t, err)
	return account
}

func today() string {
	return time.Now().UTC().Format(time.DateOnly)
}
