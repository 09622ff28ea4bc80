package candles

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/ldca/internal/domain"
)

const testCandleFile = `open_time,open,high,low,close,base_volume,quote_volume
1709294400000,100.22,100.30,100.10,100.24,12.5,1253.1
1709294460000,100.24,100.60,100.20,100.56,8.1,813.4
1709294520000,100.56,100.70,100.00,100.20,9.9,993.2
`

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVProvider_GetCandles(t *testing.T) {
	provider := NewCSVProvider(writeTestFile(t, testCandleFile))

	result, err := provider.GetCandles(context.Background(), domain.Pair{From: "BTC", To: "USDT"}, "1m", 0)
	require.NoError(t, err)
	require.Len(t, result, 3)

	first := result[0]
	require.Equal(t, time.UnixMilli(1709294400000), first.OpenTime)
	require.True(t, first.Open.Equal(decimal.RequireFromString("100.22")))
	require.True(t, first.Close.Equal(decimal.RequireFromString("100.24")))
	require.True(t, first.QuoteVolume.Equal(decimal.RequireFromString("1253.1")))
}

func TestCSVProvider_LimitKeepsMostRecent(t *testing.T) {
	provider := NewCSVProvider(writeTestFile(t, testCandleFile))

	result, err := provider.GetCandles(context.Background(), domain.Pair{}, "1m", 2)
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, time.UnixMilli(1709294460000), result[0].OpenTime)
}

func TestCSVProvider_BadRow(t *testing.T) {
	provider := NewCSVProvider(writeTestFile(t, "open_time,open,high,low,close,base_volume,quote_volume\nnot-a-number,1,1,1,1,1,1\n"))

	_, err := provider.GetCandles(context.Background(), domain.Pair{}, "1m", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "open time")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	series := []domain.Candle{
		{
			OpenTime:    time.UnixMilli(1709294400000),
			Open:        decimal.RequireFromString("100.22"),
			High:        decimal.RequireFromString("100.30"),
			Low:         decimal.RequireFromString("100.10"),
			Close:       decimal.RequireFromString("100.24"),
			BaseVolume:  decimal.RequireFromString("12.5"),
			QuoteVolume: decimal.RequireFromString("1253.1"),
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteCSV(f, series))
	require.NoError(t, f.Close())

	read, err := NewCSVProvider(path).GetCandles(context.Background(), domain.Pair{}, "1m", 0)
	require.NoError(t, err)
	require.Len(t, read, 1)
	require.Equal(t, series[0].OpenTime, read[0].OpenTime)
	require.True(t, series[0].Close.Equal(read[0].Close))
}

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1m", time.Minute},
		{"15m", 15 * time.Minute},
		{"4h", 4 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseInterval(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "m", "0m", "5x", "h1"} {
		_, err := ParseInterval(bad)
		require.Error(t, err, bad)
	}
}
