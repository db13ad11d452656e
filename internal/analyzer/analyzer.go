package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"CryptoSentry/internal/calculator"
	"CryptoSentry/internal/model"
	"CryptoSentry/internal/provider"
	"CryptoSentry/internal/store"
	"CryptoSentry/internal/strategy"
)

// barLimit is the series length requested per analysis; enough for every
// indicator's lookback with room for MACD signal convergence.
const barLimit = 100

// Analyzer runs the full pipeline for one request: series fetch with
// fallback, indicator computation, weighted vote, risk levels, persistence.
type Analyzer struct {
	selector  *provider.Selector
	generator *strategy.Generator
	store     store.Store
}

// New wires the analysis pipeline. The store records signal history; pass a
// MemoryStore when persistence is not wanted.
func New(selector *provider.Selector, weights strategy.Weights, st store.Store) *Analyzer {
	return &Analyzer{
		selector:  selector,
		generator: strategy.NewGenerator(weights),
		store:     st,
	}
}

// Analyze produces an immutable Signal for the symbol+timeframe, or a
// provider.ErrDataUnavailable-wrapped error when every data source failed.
func (a *Analyzer) Analyze(ctx context.Context, symbol, timeframe string) (*model.Signal, error) {
	series, err := a.selector.FetchSeries(ctx, symbol, timeframe, barLimit)
	if err != nil {
		return nil, fmt.Errorf("analyze %s/%s: %w", symbol, timeframe, err)
	}
	if series.Synthetic() {
		log.Printf("[WARN] analysis of %s/%s is based on synthetic data", symbol, timeframe)
	}

	set := calculator.Compute(series)
	if !set.RSI.Valid || !set.MACD.Valid {
		log.Printf("[WARN] partial indicator set for %s/%s (%d bars)", symbol, timeframe, len(series.Bars))
	}

	direction, confidence, reasons := a.generator.Generate(set, series.CurrentPrice)

	sig := &model.Signal{
		Symbol:     symbol,
		Timeframe:  timeframe,
		Direction:  direction,
		Confidence: confidence,
		EntryPrice: series.CurrentPrice,
		Indicators: set,
		Reasons:    reasons,
		Source:     series.Source,
		CreatedAt:  time.Now(),
	}

	// NEUTRAL has no risk levels; TP/SL stay zero.
	if direction != model.Neutral {
		atr := 0.0
		if set.ATR.Valid {
			atr = set.ATR.V
		}
		tp, sl, rr, err := strategy.Levels(direction, series.CurrentPrice, atr)
		if err != nil {
			return nil, fmt.Errorf("analyze %s/%s: risk levels: %w", symbol, timeframe, err)
		}
		sig.TakeProfit = tp
		sig.StopLoss = sl
		sig.RiskRewardRatio = rr
	}

	if err := a.store.RecordSignal(ctx, sig); err != nil {
		log.Printf("[ERROR] record signal for %s/%s: %v", symbol, timeframe, err)
	}
	return sig, nil
}

// Screener proxies the provider chain's market overview.
func (a *Analyzer) Screener(ctx context.Context, limit int) ([]provider.ScreenerEntry, error) {
	return a.selector.FetchScreener(ctx, limit)
}
