package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrency(t *testing.T) {
	cases := map[float64]string{
		0:         "$0.00",
		5:         "$5.00",
		843.75:    "$843.75",
		9616.5:    "$9,616.50",
		5046.88:   "$5,046.88",
		14_343.75: "$14,343.75",
		1_234_567: "$1,234,567.00",
		-1500:     "-$1,500.00",
	}

	for amount, want := range cases {
		require.Equal(t, want, Currency(amount), "amount %v", amount)
	}
}

func TestPercent(t *testing.T) {
	require.Equal(t, "6.85", Percent(0.0685, 2))
	require.Equal(t, "8.00", Percent(0.08, 2))
	require.Equal(t, "10", Percent(0.1, 0))
	require.Equal(t, "7", Percent(0.07, 0))
	require.Equal(t, "0", Percent(0, 0))
}
