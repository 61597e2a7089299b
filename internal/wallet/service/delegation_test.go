package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
)

func TestDelegationGrantAndResolve(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000200", "1111", 0)
	child := f.onboard(t, "61400000201", "", 0)

	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	grant, err := f.delegations.Grant(ctx, parentSeed, parent.ID, child.ID, 200)
	require.NoError(t, err)
	require.True(t, grant.Active)
	require.Equal(t, int64(200), grant.DailyLimit)

	// The delegate resolves the delegator's seed without any PIN.
	resolved, err := f.delegations.ResolveDelegatedSecret(ctx, grant, child.ID)
	require.NoError(t, err)
	require.Equal(t, parentSeed, resolved)

	// Anyone else cannot, even holding the same row.
	_, err = f.delegations.ResolveDelegatedSecret(ctx, grant, parent.ID)
	require.ErrorIs(t, err, domain.ErrDelegationUnauthorized)
}

func TestDelegationRevokedGrantFailsResolution(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000202", "1111", 0)
	child := f.onboard(t, "61400000203", "", 0)

	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	grant, err := f.delegations.Grant(ctx, parentSeed, parent.ID, child.ID, 100)
	require.NoError(t, err)

	require.NoError(t, f.delegations.Revoke(ctx, grant.ID))

	// The ciphertext is still on the row but the grant is dead.
	revoked, err := f.store.Delegations().GetByID(ctx, grant.ID)
	require.NoError(t, err)
	require.NotEmpty(t, revoked.SharedSecret)

	_, err = f.delegations.ResolveDelegatedSecret(ctx, revoked, child.ID)
	require.ErrorIs(t, err, domain.ErrDelegationUnauthorized)
}

func TestDelegationRegrantReplacesActiveRow(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000204", "1111", 0)
	child := f.onboard(t, "61400000205", "", 0)

	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	first, err := f.delegations.Grant(ctx, parentSeed, parent.ID, child.ID, 100)
	require.NoError(t, err)
	second, err := f.delegations.Grant(ctx, parentSeed, parent.ID, child.ID, 300)
	require.NoError(t, err)

	active, err := f.store.Delegations().GetActiveByPair(ctx, parent.ID, child.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	old, err := f.store.Delegations().GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, old.Active)
}

func TestDelegationGrantRejectsSelfAndBadSeed(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000206", "1111", 0)
	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	_, err = f.delegations.Grant(ctx, parentSeed, parent.ID, parent.ID, 100)
	require.Error(t, err)

	_, err = f.delegations.Grant(ctx, "garbage", parent.ID, "someone", 100)
	require.Error(t, err)
}

func TestDelegationUpdateLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000207", "1111", 0)
	child := f.onboard(t, "61400000208", "", 0)

	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	grant, err := f.delegations.Grant(ctx, parentSeed, parent.ID, child.ID, 100)
	require.NoError(t, err)

	require.NoError(t, f.delegations.UpdateLimit(ctx, grant.ID, 250))

	updated, err := f.store.Delegations().GetByID(ctx, grant.ID)
	require.NoError(t, err)
	require.Equal(t, int64(250), updated.DailyLimit)

	require.Error(t, f.delegations.UpdateLimit(ctx, grant.ID, -1))
}

func TestDelegationLists(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	parent := f.onboard(t, "61400000209", "1111", 0)
	childA := f.onboard(t, "61400000210", "", 0)
	childB := f.onboard(t, "61400000211", "", 0)

	parentSeed, err := f.vault.ResolveSecret(ctx, parent, "1111")
	require.NoError(t, err)

	_, err = f.delegations.Grant(ctx, parentSeed, parent.ID, childA.ID, 100)
	require.NoError(t, err)
	_, err = f.delegations.Grant(ctx, parentSeed, parent.ID, childB.ID, 50)
	require.NoError(t, err)

	granted, err := f.delegations.ListGranted(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, granted, 2)

	received, err := f.delegations.ListReceived(ctx, childB.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, parent.ID, received[0].DelegatorID)
}
