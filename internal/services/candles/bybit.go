package candles

import (
	"context"
	"strconv"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/ldca/internal/domain"
)

const bybitCategory = "spot"

// bybit uses bare minute counts for intraday intervals
var bybitIntervals = map[string]bybit.Interval{
	"1m":  bybit.Interval("1"),
	"3m":  bybit.Interval("3"),
	"5m":  bybit.Interval("5"),
	"15m": bybit.Interval("15"),
	"30m": bybit.Interval("30"),
	"1h":  bybit.Interval("60"),
	"2h":  bybit.Interval("120"),
	"4h":  bybit.Interval("240"),
	"6h":  bybit.Interval("360"),
	"12h": bybit.Interval("720"),
	"1d":  bybit.Interval("D"),
}

// BybitProvider implements Provider for the Bybit exchange.
type BybitProvider struct {
	client *bybit.Client
}

// NewBybitProvider creates a new Bybit candle provider.
func NewBybitProvider(client *bybit.Client) *BybitProvider {
	return &BybitProvider{client: client}
}

// GetCandles fetches kline data from Bybit. The API returns candles newest
// first, so the result is reversed into chronological order.
func (p *BybitProvider) GetCandles(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Candle, error) {
	bybitInterval, ok := bybitIntervals[interval]
	if !ok {
		return nil, errors.Errorf("unsupported Bybit interval: %s", interval)
	}

	dur, err := ParseInterval(interval)
	if err != nil {
		return nil, err
	}

	endTime := time.Now().UnixMilli()
	startTime := endTime - int64(limit)*dur.Milliseconds()

	klines, err := p.client.V5().Market().GetKline(bybit.V5GetKlineParam{
		Category: bybitCategory,
		Symbol:   bybit.SymbolV5(pair.Symbol()),
		Interval: bybitInterval,
		Start:    &startTime,
		End:      &endTime,
		Limit:    &limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get klines from Bybit")
	}

	if len(klines.Result.List) == 0 {
		return nil, errors.Errorf("no klines data received from Bybit for %s", pair.String())
	}

	list := klines.Result.List
	result := make([]domain.Candle, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		k := list[i]

		startMs, err := strconv.ParseInt(k.StartTime, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse kline start time: %s", k.StartTime)
		}
		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price: %s", k.Open)
		}
		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price: %s", k.High)
		}
		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price: %s", k.Low)
		}
		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price: %s", k.Close)
		}
		volume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume: %s", k.Volume)
		}
		turnover, err := decimal.NewFromString(k.Turnover)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse turnover: %s", k.Turnover)
		}

		result = append(result, domain.Candle{
			OpenTime:    time.UnixMilli(startMs),
			Open:        open,
			High:        high,
			Low:         low,
			Close:       closePrice,
			BaseVolume:  volume,
			QuoteVolume: turnover,
		})
	}

	return result, nil
}
