package candles

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// HyperliquidProvider implements Provider for the Hyperliquid exchange.
type HyperliquidProvider struct {
	info *hyperliquid.Info
}

// NewHyperliquidProvider creates a new Hyperliquid candle provider.
func NewHyperliquidProvider(info *hyperliquid.Info) *HyperliquidProvider {
	return &HyperliquidProvider{info: info}
}

// GetCandles fetches a candle snapshot from Hyperliquid. Hyperliquid keys
// markets by the base coin only; the quote side is always USD-denominated.
func (p *HyperliquidProvider) GetCandles(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error) {
	if p.info == nil {
		return nil, errors.New("hyperliquid info is nil")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	dur, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	endMs := time.Now().UnixMilli()
	// fetch a slightly wider window to account for bucket alignment
	startMs := endMs - (int64(limit)+2)*dur.Milliseconds()

	coin := strings.ToUpper(pair.From)

	snapshot, err := p.info.CandlesSnapshot(ctx, coin, interval, startMs, endMs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch candles from Hyperliquid for %s", coin)
	}
	if len(snapshot) == 0 {
		return nil, errors.Errorf("no candles from Hyperliquid for %s %s", coin, interval)
	}

	if len(snapshot) > limit {
		snapshot = snapshot[len(snapshot)-limit:]
	}

	result := make([]domain.Candle, 0, len(snapshot))
	for i, c := range snapshot {
		open, err := decimal.NewFromString(c.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
		high, err := decimal.NewFromString(c.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price at index %d", i)
		}
		low, err := decimal.NewFromString(c.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price at index %d", i)
		}
		closePrice, err := decimal.NewFromString(c.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := decimal.NewFromString(c.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		result = append(result, domain.Candle{
			OpenTime:    time.UnixMilli(c.TimeOpen),
			Open:        open,
			High:        high,
			Low:         low,
			Close:       closePrice,
			BaseVolume:  volume,
			QuoteVolume: volume.Mul(closePrice),
		})
	}

	return result, nil
}
