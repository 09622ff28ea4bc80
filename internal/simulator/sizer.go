package simulator

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// orderSize converts a leveraged quote notional and a reference price into a
// base currency quantity rounded to the exchange's quantity precision.
// Rounding is half away from zero, matching exchange order quantity rules.
// The quote amount actually moved per order is the exact product
// quantity * price and is intentionally not re-rounded.
//
// Quantities below the exchange minimums are returned as-is: the historical
// replay records them anyway, unlike live order placement.
func orderSize(notional, leverage, referencePrice decimal.Decimal, rules domain.SymbolRoundingRules) (decimal.Decimal, error) {
	if referencePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidPrice, "got %s", referencePrice.String())
	}

	raw := notional.Mul(leverage).Div(referencePrice)

	return raw.Round(rules.BaseVolumePrecision), nil
}
