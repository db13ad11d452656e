package model

import (
	"errors"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks a bar for numeric sanity before it enters the pipeline.
func (b OHLCV) Validate() error {
	if b.Time.IsZero() {
		return errors.New("bar timestamp is zero")
	}
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return errors.New("bar prices must be positive")
	}
	if b.High < b.Low {
		return errors.New("bar high cannot be less than low")
	}
	if b.Volume < 0 {
		return errors.New("bar volume cannot be negative")
	}
	return nil
}

// SourceSynthetic marks series produced by the last-resort generator.
const SourceSynthetic = "synthetic"

// PriceSeries holds the bar history for one symbol+timeframe snapshot.
type PriceSeries struct {
	Symbol       string
	Timeframe    string
	Bars         []OHLCV
	CurrentPrice float64
	Source       string // provider name; see SourceSynthetic
	FetchedAt    time.Time
}

// Validate checks that bars are well-formed and strictly time-ordered.
func (s *PriceSeries) Validate() error {
	if len(s.Bars) == 0 {
		return errors.New("series has no bars")
	}
	for i, b := range s.Bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !s.Bars[i-1].Time.Before(b.Time) {
			return errors.New("series timestamps must be strictly increasing")
		}
	}
	return nil
}

// Closes extracts the close prices in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Synthetic reports whether the series came from the last-resort generator.
func (s *PriceSeries) Synthetic() bool {
	return s.Source == SourceSynthetic
}
