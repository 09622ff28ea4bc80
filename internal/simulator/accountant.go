package simulator

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// runningState accumulates unsigned trade magnitudes across periods.
// Sign conventions are applied only when the final result is produced.
type runningState struct {
	grossBaseAcquired decimal.Decimal
	grossQuoteMoved   decimal.Decimal
	feesPaid          decimal.Decimal
	tradeCount        uint
}

func newRunningState() *runningState {
	return &runningState{
		grossBaseAcquired: decimal.Zero,
		grossQuoteMoved:   decimal.Zero,
		feesPaid:          decimal.Zero,
	}
}

// applyFill records one simulated fill. A buy pays its fee in base currency
// (the asset received), a sell pays it in quote currency (the proceeds).
func (s *runningState) applyFill(side domain.Side, baseQuantity, price, feeRate decimal.Decimal) {
	quoteAmount := baseQuantity.Mul(price)

	s.grossBaseAcquired = s.grossBaseAcquired.Add(baseQuantity)
	s.grossQuoteMoved = s.grossQuoteMoved.Add(quoteAmount)

	switch side {
	case domain.SideBuy:
		s.feesPaid = s.feesPaid.Add(feeRate.Mul(baseQuantity))
	case domain.SideSell:
		s.feesPaid = s.feesPaid.Add(feeRate.Mul(quoteAmount))
	}

	s.tradeCount++
}
