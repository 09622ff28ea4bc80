package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle single OHLCV candlestick for one fixed-width time bucket.
type Candle struct {
	OpenTime    time.Time
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
	BaseVolume  decimal.Decimal
	QuoteVolume decimal.Decimal
}

// Midpoint returns the average of the open and close prices.
func (c *Candle) Midpoint() decimal.Decimal {
	return c.Open.Add(c.Close).Div(decimal.NewFromInt(2))
}
