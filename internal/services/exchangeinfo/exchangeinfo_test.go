package exchangeinfo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/ldca/internal/domain"
)

func TestPrecisionFromStep(t *testing.T) {
	cases := []struct {
		step string
		want int32
	}{
		{"0.00001000", 5},
		{"0.000001", 6},
		{"0.01", 2},
		{"0.1", 1},
		{"1", 0},
		{"1.000", 0},
	}

	for _, tc := range cases {
		got, err := precisionFromStep(tc.step)
		require.NoError(t, err, tc.step)
		require.Equal(t, tc.want, got, tc.step)
	}
}

func TestPrecisionFromStep_Invalid(t *testing.T) {
	for _, step := range []string{"", "0", "-0.01", "abc"} {
		_, err := precisionFromStep(step)
		require.Error(t, err, step)
	}
}

func TestStaticRulesProvider(t *testing.T) {
	rules := domain.SymbolRoundingRules{
		BaseVolumePrecision: 5,
		PricePrecision:      2,
		MinBaseSize:         decimal.RequireFromString("0.00001"),
	}

	got, err := NewStaticRulesProvider(rules).GetRules(context.Background(), domain.Pair{From: "BTC", To: "USDT"})
	require.NoError(t, err)
	require.Equal(t, rules, got)
}
