package report

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
	"github.com/vadiminshakov/ldca/pkg/indicators"
)

const minCandlesForContext = 50

// MarketContext summarizes the state of the market at the end of the input
// candle series. It is informational only and never feeds the simulation.
type MarketContext struct {
	Interval  string
	LastClose decimal.Decimal
	EMA20     decimal.Decimal
	EMA50     decimal.Decimal
	RSI14     decimal.Decimal
	Trend     string
}

// BuildMarketContext derives indicator values from the candle series used
// for the run.
func BuildMarketContext(interval string, series []domain.Candle) (*MarketContext, error) {
	if len(series) < minCandlesForContext {
		return nil, errors.Errorf("insufficient candles for market context (need at least %d, got %d)", minCandlesForContext, len(series))
	}

	closes := make([]decimal.Decimal, len(series))
	for i, c := range series {
		closes[i] = c.Close
	}

	ema20, err := indicators.CalculateEMA(closes, 20)
	if err != nil {
		return nil, errors.Wrap(err, "calculate EMA20")
	}
	ema50, err := indicators.CalculateEMA(closes, 50)
	if err != nil {
		return nil, errors.Wrap(err, "calculate EMA50")
	}
	rsi14, err := indicators.CalculateRSI(closes, 14)
	if err != nil {
		return nil, errors.Wrap(err, "calculate RSI14")
	}

	lastClose := closes[len(closes)-1]
	lastEMA20 := ema20[len(ema20)-1]
	lastEMA50 := ema50[len(ema50)-1]

	return &MarketContext{
		Interval:  interval,
		LastClose: lastClose,
		EMA20:     lastEMA20,
		EMA50:     lastEMA50,
		RSI14:     rsi14[len(rsi14)-1],
		Trend:     trendDirection(lastClose, lastEMA20, lastEMA50),
	}, nil
}

func trendDirection(price, ema20, ema50 decimal.Decimal) string {
	if price.GreaterThan(ema20) && ema20.GreaterThan(ema50) {
		return "bullish"
	}
	if price.LessThan(ema20) && ema20.LessThan(ema50) {
		return "bearish"
	}
	return "neutral"
}
