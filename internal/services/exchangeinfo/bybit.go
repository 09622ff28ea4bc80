package exchangeinfo

import (
	"context"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// BybitRulesProvider resolves rounding rules from Bybit V5 spot instrument
// info.
type BybitRulesProvider struct {
	client *bybit.Client
}

// NewBybitRulesProvider creates a new Bybit rules provider.
func NewBybitRulesProvider(client *bybit.Client) *BybitRulesProvider {
	return &BybitRulesProvider{client: client}
}

// GetRules fetches and converts the spot instrument limits for pair.
func (p *BybitRulesProvider) GetRules(ctx context.Context, pair domain.Pair) (domain.SymbolRoundingRules, error) {
	symbol := bybit.SymbolV5(pair.Symbol())

	info, err := p.client.V5().Market().GetInstrumentsInfo(bybit.V5GetInstrumentsInfoParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
	})
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to fetch instruments info from Bybit for %s", pair.String())
	}
	if info.Result.Spot == nil || len(info.Result.Spot.List) == 0 {
		return domain.SymbolRoundingRules{}, errors.Errorf("bybit returned no instrument info for %s", pair.String())
	}

	item := info.Result.Spot.List[0]

	basePrecision, err := precisionFromStep(item.LotSizeFilter.BasePrecision)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrap(err, "base precision")
	}
	quotePrecision, err := precisionFromStep(item.LotSizeFilter.QuotePrecision)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrap(err, "quote precision")
	}
	pricePrecision, err := precisionFromStep(item.PriceFilter.TickSize)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrap(err, "price tick size")
	}
	minBase, err := decimal.NewFromString(item.LotSizeFilter.MinOrderQty)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to parse min order qty %q", item.LotSizeFilter.MinOrderQty)
	}
	minQuote, err := decimal.NewFromString(item.LotSizeFilter.MinOrderAmt)
	if err != nil {
		return domain.SymbolRoundingRules{}, errors.Wrapf(err, "failed to parse min order amt %q", item.LotSizeFilter.MinOrderAmt)
	}

	return domain.SymbolRoundingRules{
		BaseVolumePrecision:  basePrecision,
		QuoteVolumePrecision: quotePrecision,
		PricePrecision:       pricePrecision,
		MinBaseSize:          minBase,
		MinQuoteSize:         minQuote,
	}, nil
}
