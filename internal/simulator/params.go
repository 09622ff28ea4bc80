package simulator

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// Parameters configure a single simulation run.
type Parameters struct {
	// Period distance between consecutive simulated orders.
	Period time.Duration
	// NotionalQuoteSize quote currency amount traded each period, before leverage.
	NotionalQuoteSize decimal.Decimal
	// Side direction of every simulated order.
	Side domain.Side
	// FeeRate trading fee fraction, 0 <= FeeRate < 1.
	FeeRate decimal.Decimal
	// Leverage multiplier applied to the per-period notional.
	Leverage decimal.Decimal
}

var one = decimal.NewFromInt(1)

// Validate checks the parameters against their allowed ranges.
func (p Parameters) Validate() error {
	if p.Period <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "period must be positive, got %s", p.Period)
	}
	if p.NotionalQuoteSize.LessThanOrEqual(decimal.Zero) {
		return errors.Wrapf(ErrInvalidParameters, "notional quote size must be positive, got %s", p.NotionalQuoteSize.String())
	}
	if p.FeeRate.LessThan(decimal.Zero) || p.FeeRate.GreaterThanOrEqual(one) {
		return errors.Wrapf(ErrInvalidParameters, "fee rate must be in [0, 1), got %s", p.FeeRate.String())
	}
	if p.Leverage.LessThanOrEqual(decimal.Zero) {
		return errors.Wrapf(ErrInvalidParameters, "leverage must be positive, got %s", p.Leverage.String())
	}
	if p.Side != domain.SideBuy && p.Side != domain.SideSell {
		return errors.Wrapf(ErrInvalidParameters, "unknown side: %d", p.Side)
	}
	return nil
}
