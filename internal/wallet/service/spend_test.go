package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chillarlabs/chillar/internal/wallet/domain"
)

func TestCheckLimitUnlimited(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.spend.CheckLimit(domain.SpendLimit{DailyLimit: 0, SpentToday: 999999, LastSpendDate: today()}, 1_000_000)
	require.NoError(t, err)
}

func TestCheckLimitStaleDayIgnoresSpentCounter(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	limit := domain.SpendLimit{DailyLimit: 100, SpentToday: 95, LastSpendDate: "2020-01-01"}

	// Yesterday's 95 does not count: the whole ceiling is available.
	require.NoError(t, f.spend.CheckLimit(limit, 100))

	err := f.spend.CheckLimit(limit, 101)
	var lim *domain.LimitExceededError
	require.ErrorAs(t, err, &lim)
	require.Equal(t, int64(100), lim.Remaining)
}

func TestCheckLimitSameDay(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	limit := domain.SpendLimit{DailyLimit: 100, SpentToday: 90, LastSpendDate: today()}

	err := f.spend.CheckLimit(limit, 11)
	var lim *domain.LimitExceededError
	require.ErrorAs(t, err, &lim)
	require.Equal(t, int64(10), lim.Remaining)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	require.NoError(t, f.spend.CheckLimit(limit, 10))
}

func TestCommitAccountRollsOverThenIncrements(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000300", "", 100)

	// First spend of the day sets the counter outright.
	require.NoError(t, f.spend.CommitAccount(ctx, account, 40))
	got := f.reload(t, account.ID)
	require.Equal(t, int64(40), got.SpentToday)
	require.Equal(t, today(), got.LastSpendDate)

	// Same-day spends increment through the guarded statement.
	require.NoError(t, f.spend.CommitAccount(ctx, got, 50))
	got = f.reload(t, account.ID)
	require.Equal(t, int64(90), got.SpentToday)

	// The guard refuses an increment past the ceiling.
	err := f.spend.CommitAccount(ctx, got, 11)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)

	require.NoError(t, f.spend.CommitAccount(ctx, got, 10))
	require.Equal(t, int64(100), f.reload(t, account.ID).SpentToday)
}

func TestCommitWithStaleCallerStateStillLandsOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	account := f.onboard(t, "61400000301", "", 100)

	// Two callers both loaded the account before either committed. The
	// first wins the rollover; the second, still holding a stale triple,
	// must fall through to the guarded increment rather than reset.
	require.NoError(t, f.spend.CommitAccount(ctx, account, 60))
	require.NoError(t, f.spend.CommitAccount(ctx, account, 30))

	require.Equal(t, int64(90), f.reload(t, account.ID).SpentToday)

	// A third stale caller pushing past the ceiling is refused.
	err := f.spend.CommitAccount(ctx, account, 20)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
}
