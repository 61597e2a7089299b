package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitAmountRoundsUpToNextTen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount    int64
		principal int64
		savings   int64
	}{
		{142, 142, 8},
		{1, 1, 9},
		{99, 99, 1},
		{7, 7, 3},
	}

	for _, tc := range cases {
		principal, savings := SplitAmount(tc.amount, DefaultSplitPolicy)
		require.Equal(t, tc.principal, principal, "amount %d", tc.amount)
		require.Equal(t, tc.savings, savings, "amount %d", tc.amount)
	}
}

func TestSplitAmountExactMultipleForcesFullUnit(t *testing.T) {
	t.Parallel()

	principal, savings := SplitAmount(150, DefaultSplitPolicy)
	require.Equal(t, int64(150), principal)
	require.Equal(t, int64(10), savings)

	principal, savings = SplitAmount(100, DefaultSplitPolicy)
	require.Equal(t, int64(100), principal)
	require.Equal(t, int64(10), savings)
}

func TestSplitAmountExactMultipleWithoutForce(t *testing.T) {
	t.Parallel()

	principal, savings := SplitAmount(150, SplitPolicy{ForceSavingsOnExact: false})
	require.Equal(t, int64(150), principal)
	require.Equal(t, int64(0), savings)
}

func TestSplitAmountNonPositive(t *testing.T) {
	t.Parallel()

	_, savings := SplitAmount(0, DefaultSplitPolicy)
	require.Equal(t, int64(0), savings)

	_, savings = SplitAmount(-5, DefaultSplitPolicy)
	require.Equal(t, int64(0), savings)
}
