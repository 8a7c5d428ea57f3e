package mathutil_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tally-network/tally-daemon/pkg/mathutil"
)

func TestToDisplayUnits(t *testing.T) {
	require.Equal(t, "1500", mathutil.ToDisplayUnits(150000, 2).String())
	require.Equal(t, "0.00000001", mathutil.ToDisplayUnits(1, 8).String())
	require.Equal(t, "42", mathutil.ToDisplayUnits(42, 0).String())
}

func TestFromDisplayUnits(t *testing.T) {
	require.Equal(
		t,
		uint64(150000),
		mathutil.FromDisplayUnits(decimal.NewFromInt(1500), 2),
	)
	require.Equal(
		t,
		uint64(1),
		mathutil.FromDisplayUnits(decimal.RequireFromString("0.00000001"), 8),
	)
	// Sub-unit remainders are truncated, not rounded.
	require.Equal(
		t,
		uint64(150),
		mathutil.FromDisplayUnits(decimal.RequireFromString("1.509"), 2),
	)
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "1500.00", mathutil.FormatAmount(150000, 2))
	require.Equal(t, "0.00000001", mathutil.FormatAmount(1, 8))
	require.Equal(t, "42", mathutil.FormatAmount(42, 0))
}

func TestRoundTrip(t *testing.T) {
	for _, amount := range []uint64{0, 1, 99, 150000, 1000000000} {
		display := mathutil.ToDisplayUnits(amount, 8)
		require.Equal(t, amount, mathutil.FromDisplayUnits(display, 8))
	}
}
