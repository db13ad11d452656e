package provider

import (
	"context"
	"errors"

	"CryptoSentry/internal/model"
)

// Fetcher is the capability interface every market-data provider implements.
type Fetcher interface {
	// FetchSeries returns up to limit bars for the symbol+timeframe in
	// strictly increasing time order.
	FetchSeries(ctx context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// ScreenerEntry is one row of the top-volume market overview.
type ScreenerEntry struct {
	Symbol    string
	Price     float64
	Change24h float64 // percent
	Volume24h float64 // quote volume
	High24h   float64
	Low24h    float64
}

// Screener is implemented by providers that can list top markets.
type Screener interface {
	FetchScreener(ctx context.Context, limit int) ([]ScreenerEntry, error)
}

// ErrDataUnavailable is returned when every provider in the chain failed.
var ErrDataUnavailable = errors.New("market data unavailable from all providers")

// ErrRateLimited marks a provider response rejected for call-budget reasons;
// the selector falls back immediately instead of retrying.
var ErrRateLimited = errors.New("provider rate limited")
