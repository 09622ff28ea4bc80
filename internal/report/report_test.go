package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/ldca/internal/domain"
	"github.com/vadiminshakov/ldca/internal/simulator"
	"github.com/vadiminshakov/ldca/internal/storage/runs"
)

func sampleResult() simulator.Result {
	return simulator.Result{
		FinalPrice:          decimal.RequireFromString("100.28"),
		FinalBaseBalance:    decimal.RequireFromString("3.97035567"),
		FinalQuoteBalance:   decimal.RequireFromString("-400.0003948"),
		FeesPaid:            decimal.RequireFromString("0.00397433"),
		FeeSymbol:           "BTC",
		AverageOrderPrice:   decimal.RequireFromString("100.646"),
		TotalValue:          decimal.RequireFromString("-1.85"),
		TotalInvestedAmount: decimal.RequireFromString("400.0003948"),
		ProfitPercent:       decimal.RequireFromString("-0.4633"),
		TradeCount:          4,
	}
}

func TestRender_ContainsResultFields(t *testing.T) {
	params := simulator.Parameters{
		Period:            5 * time.Minute,
		NotionalQuoteSize: decimal.NewFromInt(100),
		Side:              domain.SideBuy,
		FeeRate:           decimal.RequireFromString("0.001"),
		Leverage:          decimal.NewFromInt(1),
	}

	out := Render(domain.Pair{From: "BTC", To: "USDT"}, params, sampleResult(), nil)

	for _, want := range []string{"BTC_USDT", "buy", "100.28", "0.00397433 BTC", "-0.4633"} {
		require.Contains(t, out, want)
	}
}

func TestRender_WithMarketContext(t *testing.T) {
	market := &MarketContext{
		Interval:  "1m",
		LastClose: decimal.RequireFromString("100.28"),
		EMA20:     decimal.RequireFromString("100.1"),
		EMA50:     decimal.RequireFromString("99.9"),
		RSI14:     decimal.RequireFromString("55"),
		Trend:     "bullish",
	}

	out := Render(domain.Pair{From: "BTC", To: "USDT"}, simulator.Parameters{Side: domain.SideBuy}, sampleResult(), market)
	require.Contains(t, out, "trend=bullish")
}

func TestWriteRunsCSV(t *testing.T) {
	records := []runs.RunRecord{
		{
			ID:                "run-1",
			Time:              time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Pair:              "BTC_USDT",
			Side:              "buy",
			Interval:          "1m",
			Period:            "5m0s",
			NotionalQuoteSize: decimal.NewFromInt(100),
			FeeRate:           decimal.RequireFromString("0.001"),
			Leverage:          decimal.NewFromInt(1),
			CandleCount:       18,
			Result:            sampleResult(),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRunsCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "id,time,pair"))
	require.Contains(t, lines[1], "run-1,2024-03-01T12:00:00Z,BTC_USDT,buy")
}

func TestBuildMarketContext(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	series := make([]domain.Candle, 60)
	for i := range series {
		price := decimal.NewFromInt(int64(100 + i))
		series[i] = domain.Candle{
			OpenTime: start.Add(time.Duration(i) * time.Minute),
			Open:     price,
			Close:    price,
		}
	}

	market, err := BuildMarketContext("1m", series)
	require.NoError(t, err)
	require.Equal(t, "1m", market.Interval)
	require.True(t, market.LastClose.Equal(decimal.NewFromInt(159)))
	require.Equal(t, "bullish", market.Trend)
}

func TestBuildMarketContext_InsufficientData(t *testing.T) {
	_, err := BuildMarketContext("1m", nil)
	require.Error(t, err)
}
