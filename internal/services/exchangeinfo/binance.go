package exchangeinfo

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// BinanceRulesProvider resolves rounding rules from the Binance exchange
// info endpoint (LOT_SIZE, PRICE_FILTER and NOTIONAL filters).
type BinanceRulesProvider struct {
	client *binance.Client
}

// NewBinanceRulesProvider creates a new Binance rules provider.
func NewBinanceRulesProvider(client *binance.Client) *BinanceRulesProvider {
	return &BinanceRulesProvider{client: client}
}

// GetRules fetches and converts the symbol filters for pair.
func (p *BinanceRulesProvider) GetRules(ctx context.Context, pair domain.Pair) (domain.SymbolRoundingRules, error) {
	info, err := p.client.NewExchangeInfoService().Symbols(pair.Symbol()).Do(ctx)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to fetch exchange info from Binance for %s", pair.String())
	}
	if len(info.Symbols) == 0 {
		return domain.SymbolRoundingRules{}, errors.Errorf("binance returned no symbol info for %s", pair.String())
	}

	symbol := info.Symbols[0]

	lotSize := symbol.LotSizeFilter()
	if lotSize == nil {
		return domain.SymbolRoundingRules{}, errors.Errorf("binance symbol %s has no LOT_SIZE filter", pair.Symbol())
	}
	priceFilter := symbol.PriceFilter()
	if priceFilter == nil {
		return domain.SymbolRoundingRules{}, errors.Errorf("binance symbol %s has no PRICE_FILTER", pair.Symbol())
	}

	basePrecision, err := precisionFromStep(lotSize.StepSize)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrap(err, "lot size step")
	}
	pricePrecision, err := precisionFromStep(priceFilter.TickSize)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrap(err, "price tick size")
	}
	minBase, err := decimal.NewFromString(lotSize.MinQuantity)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to parse min quantity %q", lotSize.MinQuantity)
	}

	minQuote := decimal.Zero
	if notional := symbol.NotionalFilter(); notional != nil {
		minQuote, err = decimal.NewFromString(notional.MinNotional)
		if err != nil {
			return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to parse min notional %q", notional.MinNotional)
		}
	}

	return domain.SymbolRoundingRules{
		BaseVolumePrecision:  basePrecision,
		QuoteVolumePrecision: int32(symbol.QuotePrecision),
		PricePrecision:       pricePrecision,
		MinBaseSize:          minBase,
		MinQuoteSize:         minQuote,
	}, nil
}
