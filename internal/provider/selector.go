package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	"CryptoSentry/internal/model"
)

// Selector tries an ordered list of providers and falls back on failure.
// Fallback is the retry strategy: a provider that fails is skipped for the
// rest of the pass but eligible again on the next call.
type Selector struct {
	providers []Fetcher
	pacer     *pacer
	timeout   time.Duration
}

// NewSelector builds a selector over the given providers, in priority
// order. callTimeout bounds each individual provider call; minInterval is
// the process-wide spacing between calls to the same provider.
func NewSelector(callTimeout, minInterval time.Duration, providers ...Fetcher) *Selector {
	return &Selector{
		providers: providers,
		pacer:     newPacer(minInterval),
		timeout:   callTimeout,
	}
}

// FetchSeries returns the first provider's series that passes validation,
// or ErrDataUnavailable after exhausting the chain.
func (s *Selector) FetchSeries(ctx context.Context, symbol, timeframe string, limit int) (*model.PriceSeries, error) {
	for _, p := range s.providers {
		if err := s.pacer.wait(ctx, p.Name()); err != nil {
			return nil, err // only fails on ctx cancellation
		}

		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		bars, err := p.FetchSeries(callCtx, symbol, timeframe, limit)
		cancel()
		if err != nil {
			log.Printf("[WARN] provider %s: fetch series %s/%s failed: %v", p.Name(), symbol, timeframe, err)
			continue
		}

		series := &model.PriceSeries{
			Symbol:    symbol,
			Timeframe: timeframe,
			Bars:      bars,
			Source:    p.Name(),
			FetchedAt: time.Now(),
		}
		if err := series.Validate(); err != nil {
			log.Printf("[WARN] provider %s: malformed series for %s: %v", p.Name(), symbol, err)
			continue
		}

		// Current price from the same provider; fall back to the last
		// close rather than failing an otherwise good series.
		if err := s.pacer.wait(ctx, p.Name()); err != nil {
			return nil, err
		}
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		price, err := p.FetchCurrentPrice(callCtx, symbol)
		cancel()
		if err != nil || price <= 0 {
			log.Printf("[WARN] provider %s: current price for %s failed, using last close: %v", p.Name(), symbol, err)
			price = bars[len(bars)-1].Close
		}
		series.CurrentPrice = price
		return series, nil
	}
	return nil, fmt.Errorf("fetch series %s/%s: %w", symbol, timeframe, ErrDataUnavailable)
}

// FetchCurrentPrice returns the first provider's price, or
// ErrDataUnavailable after exhausting the chain.
func (s *Selector) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	for _, p := range s.providers {
		if err := s.pacer.wait(ctx, p.Name()); err != nil {
			return 0, err
		}
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		price, err := p.FetchCurrentPrice(callCtx, symbol)
		cancel()
		if err != nil {
			log.Printf("[WARN] provider %s: current price for %s failed: %v", p.Name(), symbol, err)
			continue
		}
		if price <= 0 {
			log.Printf("[WARN] provider %s: non-positive price for %s", p.Name(), symbol)
			continue
		}
		return price, nil
	}
	return 0, fmt.Errorf("fetch current price %s: %w", symbol, ErrDataUnavailable)
}

// FetchScreener asks each provider that supports screening, in order.
func (s *Selector) FetchScreener(ctx context.Context, limit int) ([]ScreenerEntry, error) {
	for _, p := range s.providers {
		scr, ok := p.(Screener)
		if !ok {
			continue
		}
		if err := s.pacer.wait(ctx, p.Name()); err != nil {
			return nil, err
		}
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		entries, err := scr.FetchScreener(callCtx, limit)
		cancel()
		if err != nil {
			log.Printf("[WARN] provider %s: screener failed: %v", p.Name(), err)
			continue
		}
		return entries, nil
	}
	return nil, fmt.Errorf("screener: %w", ErrDataUnavailable)
}
