package strategy

import (
	"fmt"

	"CryptoSentry/internal/model"
)

// Weights holds the vote weight of each indicator rule. Values are policy,
// not contract: they can be tuned in config without touching the vote
// mechanism. Each must be in (0,1].
type Weights struct {
	RSI        float64 `yaml:"rsi"`
	MACD       float64 `yaml:"macd"`
	MATrend    float64 `yaml:"ma_trend"`
	Bollinger  float64 `yaml:"bollinger"`
	Stochastic float64 `yaml:"stochastic"`
}

// DefaultWeights reflects each rule's historical reliability.
func DefaultWeights() Weights {
	return Weights{
		RSI:        0.8,
		MACD:       0.7,
		MATrend:    0.6,
		Bollinger:  0.5,
		Stochastic: 0.4,
	}
}

// Total returns the maximum achievable weighted sum.
func (w Weights) Total() float64 {
	return w.RSI + w.MACD + w.MATrend + w.Bollinger + w.Stochastic
}

// Validate checks every weight is in (0,1].
func (w Weights) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"rsi", w.RSI},
		{"macd", w.MACD},
		{"ma_trend", w.MATrend},
		{"bollinger", w.Bollinger},
		{"stochastic", w.Stochastic},
	} {
		if f.v <= 0 || f.v > 1 {
			return fmt.Errorf("weight %s must be in (0,1], got %v", f.name, f.v)
		}
	}
	return nil
}

// Oscillator thresholds the rules vote on.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	stochOversold   = 20.0
	stochOverbought = 80.0
)

// rule is one declarative vote: given a fixed indicator set it fires LONG,
// SHORT, or abstains (NEUTRAL), deterministically.
type rule struct {
	name   string
	weight func(Weights) float64
	eval   func(set model.IndicatorSet, price float64) (model.Direction, string)
}

func abstain() (model.Direction, string) { return model.Neutral, "" }

var rules = []rule{
	{
		name:   "rsi",
		weight: func(w Weights) float64 { return w.RSI },
		eval: func(set model.IndicatorSet, _ float64) (model.Direction, string) {
			if !set.RSI.Valid {
				return abstain()
			}
			switch {
			case set.RSI.V < rsiOversold:
				return model.Long, fmt.Sprintf("oversold (RSI %.1f)", set.RSI.V)
			case set.RSI.V > rsiOverbought:
				return model.Short, fmt.Sprintf("overbought (RSI %.1f)", set.RSI.V)
			}
			return abstain()
		},
	},
	{
		name:   "macd",
		weight: func(w Weights) float64 { return w.MACD },
		eval: func(set model.IndicatorSet, _ float64) (model.Direction, string) {
			if !set.MACD.Valid {
				return abstain()
			}
			switch {
			case set.MACD.Line > set.MACD.Signal && set.MACD.Histogram > 0:
				return model.Long, "bullish crossover"
			case set.MACD.Line < set.MACD.Signal && set.MACD.Histogram < 0:
				return model.Short, "bearish crossover"
			}
			return abstain()
		},
	},
	{
		name:   "ma_trend",
		weight: func(w Weights) float64 { return w.MATrend },
		eval: func(set model.IndicatorSet, price float64) (model.Direction, string) {
			if !set.SMA20.Valid || !set.EMA12.Valid || !set.EMA26.Valid {
				return abstain()
			}
			switch {
			case price > set.SMA20.V && set.EMA12.V > set.EMA26.V:
				return model.Long, "price above moving averages"
			case price < set.SMA20.V && set.EMA12.V < set.EMA26.V:
				return model.Short, "price below moving averages"
			}
			return abstain()
		},
	},
	{
		name:   "bollinger",
		weight: func(w Weights) float64 { return w.Bollinger },
		eval: func(set model.IndicatorSet, price float64) (model.Direction, string) {
			if !set.Bollinger.Valid {
				return abstain()
			}
			switch {
			case price < set.Bollinger.Lower:
				return model.Long, "price below lower band"
			case price > set.Bollinger.Upper:
				return model.Short, "price above upper band"
			}
			return abstain()
		},
	},
	{
		name:   "stochastic",
		weight: func(w Weights) float64 { return w.Stochastic },
		eval: func(set model.IndicatorSet, _ float64) (model.Direction, string) {
			if !set.Stochastic.Valid {
				return abstain()
			}
			k, d := set.Stochastic.K, set.Stochastic.D
			switch {
			case k < stochOversold && d < stochOversold:
				return model.Long, fmt.Sprintf("stochastic oversold (%%K %.1f)", k)
			case k > stochOverbought && d > stochOverbought:
				return model.Short, fmt.Sprintf("stochastic overbought (%%K %.1f)", k)
			}
			return abstain()
		},
	},
}
