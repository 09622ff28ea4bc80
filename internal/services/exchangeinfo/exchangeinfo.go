// Package exchangeinfo resolves per-symbol rounding rules from exchange
// metadata endpoints.
package exchangeinfo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// RulesProvider resolves quantity and price rounding rules for a pair.
type RulesProvider interface {
	GetRules(ctx context.Context, pair domain.Pair) (domain.SymbolRoundingRules, error)
}

// StaticRulesProvider returns a fixed rule set, used for offline runs where
// no exchange connection is available.
type StaticRulesProvider struct {
	rules domain.SymbolRoundingRules
}

// NewStaticRulesProvider creates a provider that always returns rules.
func NewStaticRulesProvider(rules domain.SymbolRoundingRules) *StaticRulesProvider {
	return &StaticRulesProvider{rules: rules}
}

// GetRules returns the configured rules.
func (p *StaticRulesProvider) GetRules(context.Context, domain.Pair) (domain.SymbolRoundingRules, error) {
	return p.rules, nil
}

const maxPrecisionPlaces = 18

// precisionFromStep converts an exchange step size such as "0.00001000" into
// the number of decimal places it allows (5 for the example).
func precisionFromStep(step string) (int32, error) {
	d, err := decimal.NewFromString(step)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse step size %q", step)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return 0, errors.Errorf("step size must be positive, got %s", step)
	}

	for places := int32(0); places <= maxPrecisionPlaces; places++ {
		if d.Round(places).Equal(d) {
			return places, nil
		}
	}
	return 0, errors.Errorf("step size %s has too many decimal places", step)
}
