package simulator

import "github.com/pkg/errors"

var (
	// ErrEmptySeries means no candles were supplied, so no period could be priced.
	ErrEmptySeries = errors.New("candle series is empty")
	// ErrInvalidPrice means a reference price is zero or negative and cannot size an order.
	ErrInvalidPrice = errors.New("reference price must be positive")
	// ErrInvalidParameters means the simulation parameters fail validation.
	ErrInvalidParameters = errors.New("invalid simulation parameters")
)
