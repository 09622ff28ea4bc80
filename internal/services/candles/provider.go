// Package candles provides historical candle sources for the simulator.
package candles

import (
	"context"
	"fmt"
	"time"

	"github.com/vadiminshakov/ldca/internal/domain"
)

// Provider fetches historical candle data for a trading pair.
type Provider interface {
	// GetCandles fetches up to limit candles for the pair at the given
	// interval (e.g. "1m", "5m", "1h", "4h", "1d"), oldest first.
	GetCandles(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error)
}

// ParseInterval converts an interval string like "1m", "4h" or "1d"
// into a duration.
func ParseInterval(interval string) (time.Duration, error) {
	if interval == "" {
		return 0, fmt.Errorf("empty interval")
	}

	unit := interval[len(interval)-1]
	value := interval[:len(interval)-1]
	if value == "" {
		return 0, fmt.Errorf("invalid interval: %s", interval)
	}

	var n int64
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid interval number: %s", interval)
		}
		n = n*10 + int64(r-'0')
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid interval: %s", interval)
	}

	switch unit {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported interval unit: %c", unit)
	}
}
