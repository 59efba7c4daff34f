package curve

import (
	"errors"
	"testing"

	"sigmoidcalc/fixed"

	"github.com/stretchr/testify/require"
)

func TestIntegralZeroWidth(t *testing.T) {
	params := testParams()
	for name, est := range estimators {
		for _, s := range []fixed.Value{fixed.Zero, params.B, fixed.FromInt64(-10), fixed.MustParse("123.456")} {
			got, err := Integral(s, s, params, est)
			require.NoError(t, err, name)
			require.True(t, got.IsZero(), "%s: integral(%s, %s) = %s", name, s, s, got)
		}
	}
}

func TestIntegralReversedRangeIsZero(t *testing.T) {
	got, err := Integral(fixed.FromUint64(600), fixed.FromUint64(400), testParams(), SeriesEstimator{})
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestIntegralLeftRectangle(t *testing.T) {
	params := testParams()
	est := SeriesEstimator{}

	full, err := Integral(fixed.Zero, fixed.FromUint64(1000), params, est)
	require.NoError(t, err)
	require.Equal(t, "495071783815348953050000", full.Raw().Dec())

	mid, err := Integral(fixed.FromUint64(400), fixed.FromUint64(600), params, est)
	require.NoError(t, err)
	require.Equal(t, "99537883285196870252000", mid.Raw().Dec())

	// Left rectangles underestimate an increasing curve; finer slices get closer.
	fine, err := IntegralN(fixed.FromUint64(400), fixed.FromUint64(600), params, est, 1000)
	require.NoError(t, err)
	require.Equal(t, "99953788328519686935200", fine.Raw().Dec())
	require.Equal(t, 1, fine.Cmp(mid))

	// The curve is symmetric about B, so the area over [B-100, B+100) is
	// close to A * 200 / 2.
	require.True(t, between(mid, fixed.FromUint64(99_000), fixed.FromUint64(100_000)), "mid = %s", mid)
}

func TestIntegralAcrossNegativeSupply(t *testing.T) {
	got, err := Integral(fixed.FromInt64(-100), fixed.FromUint64(100), testParams(), SeriesEstimator{})
	require.NoError(t, err)
	require.Equal(t, "1895020331860020440000", got.Raw().Dec())
}

func TestIntegralStepBounds(t *testing.T) {
	params := testParams()
	for _, steps := range []int{0, -1, MaxIntegrationSteps + 1} {
		_, err := IntegralN(fixed.Zero, fixed.One, params, SeriesEstimator{}, steps)
		require.ErrorIs(t, err, ErrInvalidSteps, "steps=%d", steps)
	}
	_, err := IntegralN(fixed.Zero, fixed.One, params, SeriesEstimator{}, 1)
	require.NoError(t, err)
}

func TestBuyAndSell(t *testing.T) {
	params := testParams()
	est := SeriesEstimator{}
	want, err := Integral(fixed.FromUint64(400), fixed.FromUint64(600), params, est)
	require.NoError(t, err)

	cost, err := BuyCost(fixed.FromUint64(400), fixed.FromUint64(200), params, est, IntegrationSteps)
	require.NoError(t, err)
	require.True(t, cost.Equal(want), "buy = %s, want %s", cost, want)

	proceeds, err := SellProceeds(fixed.FromUint64(600), fixed.FromUint64(200), params, est, IntegrationSteps)
	require.NoError(t, err)
	require.True(t, proceeds.Equal(want), "sell = %s, want %s", proceeds, want)

	zero, err := BuyCost(fixed.FromUint64(400), fixed.Zero, params, est, IntegrationSteps)
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	_, err = SellProceeds(fixed.FromUint64(100), fixed.FromUint64(200), params, est, IntegrationSteps)
	require.True(t, errors.Is(err, ErrInsufficientSupply), "got %v", err)

	_, err = BuyCost(fixed.FromUint64(100), fixed.FromInt64(-1), params, est, IntegrationSteps)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = SellProceeds(fixed.FromUint64(100), fixed.FromInt64(-1), params, est, IntegrationSteps)
	require.ErrorIs(t, err, ErrInvalidAmount)
}
