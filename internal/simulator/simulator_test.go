package simulator

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/ldca/internal/domain"
)

var btcusdt = domain.Pair{From: "BTC", To: "USDT"}

// fixtureCandles builds 18 one-minute candles whose 5-minute reference
// candles (indexes 0, 5, 10, 15) have midpoints 100.23, 100.555, 100.1 and
// 101.715. The last candle closes at 100.28.
func fixtureCandles(t *testing.T) []domain.Candle {
	t.Helper()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	openClose := map[int][2]string{
		0:  {"100.22", "100.24"},
		5:  {"100.55", "100.56"},
		10: {"100.00", "100.20"},
		15: {"101.71", "101.72"},
		17: {"100.30", "100.28"},
	}

	candles := make([]domain.Candle, 0, 18)
	for i := 0; i < 18; i++ {
		oc, ok := openClose[i]
		if !ok {
			oc = [2]string{"100.10", "100.10"}
		}
		candles = append(candles, candleAt(start.Add(time.Duration(i)*time.Minute), oc[0], oc[1]))
	}
	return candles
}

func fixtureParams(side domain.Side) Parameters {
	return Parameters{
		Period:            5 * time.Minute,
		NotionalQuoteSize: decimal.NewFromInt(100),
		Side:              side,
		FeeRate:           decimal.RequireFromString("0.001"),
		Leverage:          decimal.NewFromInt(1),
	}
}

func TestRun_BuyEndToEnd(t *testing.T) {
	result, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideBuy))
	require.NoError(t, err)

	// per-period quantities: 0.99771, 0.99448, 0.999, 0.98314
	grossBase := decimal.RequireFromString("3.97433")
	grossQuote := decimal.RequireFromString("400.0003948")
	fees := decimal.RequireFromString("0.00397433")
	finalBase := grossBase.Sub(fees)

	require.True(t, result.FinalPrice.Equal(decimal.RequireFromString("100.28")))
	require.Equal(t, "BTC", result.FeeSymbol)
	require.True(t, result.FeesPaid.Equal(fees), "fees %s", result.FeesPaid)
	require.True(t, result.FinalBaseBalance.Equal(finalBase), "base %s", result.FinalBaseBalance)
	require.True(t, result.FinalQuoteBalance.Equal(grossQuote.Neg()), "quote %s", result.FinalQuoteBalance)
	require.True(t, result.TotalInvestedAmount.Equal(grossQuote))
	require.True(t, result.AverageOrderPrice.Equal(grossQuote.Div(grossBase)))
	require.Equal(t, uint(4), result.TradeCount)

	wantValue := finalBase.Mul(result.FinalPrice).Sub(grossQuote)
	require.True(t, result.TotalValue.Equal(wantValue), "value %s", result.TotalValue)

	wantProfit, _ := wantValue.Div(grossQuote).Mul(decimal.NewFromInt(100)).Float64()
	gotProfit, _ := result.ProfitPercent.Float64()
	require.InDelta(t, wantProfit, gotProfit, 1e-7)
}

func TestRun_SellEndToEnd(t *testing.T) {
	result, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideSell))
	require.NoError(t, err)

	grossBase := decimal.RequireFromString("3.97433")
	grossQuote := decimal.RequireFromString("400.0003948")
	fees := grossQuote.Mul(decimal.RequireFromString("0.001"))
	netQuote := grossQuote.Sub(fees)

	require.Equal(t, "USDT", result.FeeSymbol)
	require.True(t, result.FeesPaid.Equal(fees), "fees %s", result.FeesPaid)
	require.True(t, result.FinalBaseBalance.Equal(grossBase.Neg()))
	require.True(t, result.FinalQuoteBalance.Equal(netQuote), "quote %s", result.FinalQuoteBalance)
	require.True(t, result.TotalInvestedAmount.Equal(grossBase))

	wantValue := grossBase.Neg().Add(netQuote.Div(result.FinalPrice))
	require.True(t, result.TotalValue.Equal(wantValue), "value %s", result.TotalValue)

	wantProfit, _ := wantValue.Div(grossBase).Mul(decimal.NewFromInt(100)).Float64()
	gotProfit, _ := result.ProfitPercent.Float64()
	require.InDelta(t, wantProfit, gotProfit, 1e-7)
}

func TestRun_SizingIsSideAgnostic(t *testing.T) {
	buy, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideBuy))
	require.NoError(t, err)
	sell, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideSell))
	require.NoError(t, err)

	// same gross magnitudes, only accounting differs
	require.True(t, buy.TotalInvestedAmount.Equal(sell.FinalQuoteBalance.Add(sell.FeesPaid)))
	require.True(t, buy.AverageOrderPrice.Equal(sell.AverageOrderPrice))
}

func TestRun_Deterministic(t *testing.T) {
	first, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideBuy))
	require.NoError(t, err)
	second, err := Run(btcusdt, fixtureCandles(t), testRules(), fixtureParams(domain.SideBuy))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRun_EmptySeries(t *testing.T) {
	_, err := Run(btcusdt, nil, testRules(), fixtureParams(domain.SideBuy))
	require.True(t, errors.Is(err, ErrEmptySeries))
}

func TestRun_InvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero period", func(p *Parameters) { p.Period = 0 }},
		{"negative notional", func(p *Parameters) { p.NotionalQuoteSize = decimal.NewFromInt(-1) }},
		{"zero notional", func(p *Parameters) { p.NotionalQuoteSize = decimal.Zero }},
		{"fee rate one", func(p *Parameters) { p.FeeRate = decimal.NewFromInt(1) }},
		{"negative fee rate", func(p *Parameters) { p.FeeRate = decimal.RequireFromString("-0.1") }},
		{"zero leverage", func(p *Parameters) { p.Leverage = decimal.Zero }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := fixtureParams(domain.SideBuy)
			tc.mutate(&params)
			_, err := Run(btcusdt, fixtureCandles(t), testRules(), params)
			require.True(t, errors.Is(err, ErrInvalidParameters), "got %v", err)
		})
	}
}

func TestRun_InvalidReferencePrice(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	candles := []domain.Candle{
		candleAt(start, "1", "-1"), // midpoint zero
	}

	_, err := Run(btcusdt, candles, testRules(), fixtureParams(domain.SideBuy))
	require.True(t, errors.Is(err, ErrInvalidPrice), "got %v", err)
}
