package domain

import "github.com/shopspring/decimal"

// SymbolRoundingRules per-pair precision limits and minimum order sizes,
// as published by the exchange for a trading symbol.
type SymbolRoundingRules struct {
	// BaseVolumePrecision decimal places allowed in order quantity (base currency).
	BaseVolumePrecision int32
	// QuoteVolumePrecision decimal places allowed in quote currency amounts.
	QuoteVolumePrecision int32
	// PricePrecision decimal places allowed in order price.
	PricePrecision int32
	// MinBaseSize minimum order quantity in base currency.
	MinBaseSize decimal.Decimal
	// MinQuoteSize minimum order notional in quote currency.
	MinQuoteSize decimal.Decimal
}
