package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func constantSeries(value int64, n int) []decimal.Decimal {
	series := make([]decimal.Decimal, n)
	for i := range series {
		series[i] = decimal.NewFromInt(value)
	}
	return series
}

func TestCalculateEMA_ConstantSeries(t *testing.T) {
	ema, err := CalculateEMA(constantSeries(100, 50), 20)
	require.NoError(t, err)
	require.NotEmpty(t, ema)

	last, _ := ema[len(ema)-1].Float64()
	require.InDelta(t, 100.0, last, 1e-9)
}

func TestCalculateEMA_NotEnoughData(t *testing.T) {
	_, err := CalculateEMA(constantSeries(100, 5), 20)
	require.Error(t, err)
}

func TestCalculateRSI_RisingSeries(t *testing.T) {
	closes := make([]decimal.Decimal, 30)
	for i := range closes {
		closes[i] = decimal.NewFromInt(int64(100 + i))
	}

	rsi, err := CalculateRSI(closes, 14)
	require.NoError(t, err)
	require.NotEmpty(t, rsi)

	// strictly rising prices keep RSI pinned at the top of its range
	last, _ := rsi[len(rsi)-1].Float64()
	require.Greater(t, last, 70.0)
}

func TestCalculateRSI_NotEnoughData(t *testing.T) {
	_, err := CalculateRSI(constantSeries(100, 10), 14)
	require.Error(t, err)
}
