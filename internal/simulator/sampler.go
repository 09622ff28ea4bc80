package simulator

import (
	"time"

	"github.com/vadiminshakov/ldca/internal/domain"
)

// referenceCandles partitions candles into consecutive period-wide windows
// anchored at the first candle's timestamp and returns the first candle of
// each window. Windows without candles yield nothing; a partial trailing
// window still yields its first candle.
func referenceCandles(candles []domain.Candle, period time.Duration) []domain.Candle {
	if len(candles) == 0 {
		return nil
	}

	refs := make([]domain.Candle, 0, len(candles))
	windowStart := candles[0].OpenTime

	for _, c := range candles {
		if c.OpenTime.Before(windowStart) {
			continue
		}
		// skip windows that hold no candles
		for !c.OpenTime.Before(windowStart.Add(period)) {
			windowStart = windowStart.Add(period)
		}
		refs = append(refs, c)
		windowStart = windowStart.Add(period)
	}

	return refs
}
