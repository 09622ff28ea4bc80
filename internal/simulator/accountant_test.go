package simulator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/ldca/internal/domain"
)

func TestApplyFill_BuyFeeInBase(t *testing.T) {
	state := newRunningState()

	qty := decimal.RequireFromString("0.5")
	price := decimal.NewFromInt(100)
	fee := decimal.RequireFromString("0.001")

	state.applyFill(domain.SideBuy, qty, price, fee)

	require.True(t, state.grossBaseAcquired.Equal(qty))
	require.True(t, state.grossQuoteMoved.Equal(decimal.NewFromInt(50)))
	require.True(t, state.feesPaid.Equal(decimal.RequireFromString("0.0005")), "got %s", state.feesPaid)
	require.Equal(t, uint(1), state.tradeCount)
}

func TestApplyFill_SellFeeInQuote(t *testing.T) {
	state := newRunningState()

	qty := decimal.RequireFromString("0.5")
	price := decimal.NewFromInt(100)
	fee := decimal.RequireFromString("0.001")

	state.applyFill(domain.SideSell, qty, price, fee)

	require.True(t, state.grossBaseAcquired.Equal(qty))
	require.True(t, state.grossQuoteMoved.Equal(decimal.NewFromInt(50)))
	require.True(t, state.feesPaid.Equal(decimal.RequireFromString("0.05")), "got %s", state.feesPaid)
	require.Equal(t, uint(1), state.tradeCount)
}

func TestApplyFill_AccumulatesAcrossPeriods(t *testing.T) {
	state := newRunningState()
	fee := decimal.RequireFromString("0.002")

	state.applyFill(domain.SideBuy, decimal.NewFromInt(1), decimal.NewFromInt(10), fee)
	state.applyFill(domain.SideBuy, decimal.NewFromInt(2), decimal.NewFromInt(20), fee)

	require.True(t, state.grossBaseAcquired.Equal(decimal.NewFromInt(3)))
	require.True(t, state.grossQuoteMoved.Equal(decimal.NewFromInt(50)))
	require.True(t, state.feesPaid.Equal(decimal.RequireFromString("0.006")))
	require.Equal(t, uint(2), state.tradeCount)
}
