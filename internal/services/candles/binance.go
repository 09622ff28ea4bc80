package candles

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

// BinanceProvider implements Provider for the Binance exchange.
type BinanceProvider struct {
	client *binance.Client
}

// NewBinanceProvider creates a new Binance candle provider.
func NewBinanceProvider(client *binance.Client) *BinanceProvider {
	return &BinanceProvider{client: client}
}

// GetCandles fetches kline data from Binance.
func (p *BinanceProvider) GetCandles(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(pair.Symbol()).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Binance for %s", pair.String())
	}

	result := make([]domain.Candle, len(klines))
	for i, k := range klines {
		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price at index %d", i)
		}
		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price at index %d", i)
		}
		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		baseVolume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}
		quoteVolume, err := decimal.NewFromString(k.QuoteAssetVolume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse quote volume at index %d", i)
		}

		result[i] = domain.Candle{
			OpenTime:    time.Unix(0, k.OpenTime*int64(time.Millisecond)),
			Open:        open,
			High:        high,
			Low:         low,
			Close:       closePrice,
			BaseVolume:  baseVolume,
			QuoteVolume: quoteVolume,
		}
	}

	return result, nil
}
