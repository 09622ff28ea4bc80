// Package simulator replays a leveraged DCA strategy over a historical candle
// series. The engine is a deterministic single pass over in-memory data: it
// performs no I/O and holds no state between runs, so concurrent runs with
// independent inputs are safe.
package simulator

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

var percentMultiplier = decimal.NewFromInt(100)

// Result is the outcome of one simulation run.
type Result struct {
	// FinalPrice close of the very last candle of the input series,
	// used as the mark-to-market reference.
	FinalPrice decimal.Decimal
	// FinalBaseBalance net base currency position after fees, signed.
	FinalBaseBalance decimal.Decimal
	// FinalQuoteBalance net quote currency position after fees, signed.
	FinalQuoteBalance decimal.Decimal
	// FeesPaid total fees, denominated in FeeSymbol.
	FeesPaid decimal.Decimal
	// FeeSymbol currency the fees were charged in: base for buys, quote for sells.
	FeeSymbol string
	// AverageOrderPrice volume-weighted average execution price across all periods.
	AverageOrderPrice decimal.Decimal
	// TotalValue mark-to-market value of the position at FinalPrice.
	TotalValue decimal.Decimal
	// TotalInvestedAmount gross amount committed: quote moved for buys, base sold for sells.
	TotalInvestedAmount decimal.Decimal
	// ProfitPercent TotalValue relative to TotalInvestedAmount, in percent.
	ProfitPercent decimal.Decimal
	// TradeCount number of periods that produced a fill.
	TradeCount uint
}

// Run replays the strategy described by params over candles and returns the
// final balances, fees and profit metrics. Candles must be ordered
// chronologically. The reference price of each period is the midpoint of its
// first candle; one order sized per rules is recorded at that price.
func Run(pair domain.Pair, candles []domain.Candle, rules domain.SymbolRoundingRules, params Parameters) (Result, error) {
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if len(candles) == 0 {
		return Result{}, ErrEmptySeries
	}

	state := newRunningState()
	for _, ref := range referenceCandles(candles, params.Period) {
		referencePrice := ref.Midpoint()

		quantity, err := orderSize(params.NotionalQuoteSize, params.Leverage, referencePrice, rules)
		if err != nil {
			return Result{}, errors.Wrapf(err, "period starting at %s", ref.OpenTime)
		}

		state.applyFill(params.Side, quantity, referencePrice, params.FeeRate)
	}

	finalPrice := candles[len(candles)-1].Close

	return finalize(state, pair, params.Side, finalPrice)
}

// finalize computes the terminal result from the accumulated state, valuing
// the position at finalPrice.
func finalize(state *runningState, pair domain.Pair, side domain.Side, finalPrice decimal.Decimal) (Result, error) {
	if state.tradeCount == 0 || state.grossBaseAcquired.IsZero() {
		return Result{}, errors.Wrap(ErrEmptySeries, "no volume was executed")
	}
	if finalPrice.LessThanOrEqual(decimal.Zero) {
		return Result{}, errors.Wrapf(ErrInvalidPrice, "final close %s", finalPrice.String())
	}

	result := Result{
		FinalPrice:        finalPrice,
		FeesPaid:          state.feesPaid,
		AverageOrderPrice: state.grossQuoteMoved.Div(state.grossBaseAcquired),
		TradeCount:        state.tradeCount,
	}

	switch side {
	case domain.SideBuy:
		result.FinalBaseBalance = state.grossBaseAcquired.Sub(state.feesPaid)
		result.FinalQuoteBalance = state.grossQuoteMoved.Neg()
		result.TotalInvestedAmount = state.grossQuoteMoved
		result.TotalValue = result.FinalBaseBalance.Mul(finalPrice).Sub(state.grossQuoteMoved)
		result.FeeSymbol = pair.From
	case domain.SideSell:
		netQuote := state.grossQuoteMoved.Sub(state.feesPaid)
		result.FinalBaseBalance = state.grossBaseAcquired.Neg()
		result.FinalQuoteBalance = netQuote
		result.TotalInvestedAmount = state.grossBaseAcquired
		result.TotalValue = result.FinalBaseBalance.Add(netQuote.Div(finalPrice))
		result.FeeSymbol = pair.To
	}

	result.ProfitPercent = result.TotalValue.Div(result.TotalInvestedAmount).Mul(percentMultiplier)

	return result, nil
}
