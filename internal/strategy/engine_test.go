package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentry/internal/model"
)

// bullishSet votes LONG on RSI, MACD, and the MA trend; bands and
// stochastic abstain.
func bullishSet() model.IndicatorSet {
	return model.IndicatorSet{
		RSI:   model.Scalar(25),
		MACD:  model.MACDValue{Line: 12, Signal: 8, Histogram: 4, Valid: true},
		SMA20: model.Scalar(95),
		EMA12: model.Scalar(102),
		EMA26: model.Scalar(100),
	}
}

func bearishSet() model.IndicatorSet {
	return model.IndicatorSet{
		RSI:   model.Scalar(78),
		MACD:  model.MACDValue{Line: -12, Signal: -8, Histogram: -4, Valid: true},
		SMA20: model.Scalar(105),
		EMA12: model.Scalar(98),
		EMA26: model.Scalar(100),
	}
}

func TestGenerate_LongConsensus(t *testing.T) {
	g := NewGenerator(DefaultWeights())
	dir, conf, reasons := g.Generate(bullishSet(), 100)

	assert.Equal(t, model.Long, dir)
	// RSI + MACD + MA trend = 2.1 of 3.0 total weight.
	assert.InDelta(t, 70, conf, 0.01)
	assert.GreaterOrEqual(t, conf, 60.0)
	require.Len(t, reasons, 3)
	for _, r := range reasons {
		assert.Equal(t, model.Long, r.Direction)
	}
}

func TestGenerate_ShortConsensus(t *testing.T) {
	g := NewGenerator(DefaultWeights())
	dir, conf, reasons := g.Generate(bearishSet(), 100)

	assert.Equal(t, model.Short, dir)
	assert.InDelta(t, 70, conf, 0.01)
	require.Len(t, reasons, 3)
	for _, r := range reasons {
		assert.Equal(t, model.Short, r.Direction)
	}
}

func TestGenerate_EmptySetIsNeutral(t *testing.T) {
	g := NewGenerator(DefaultWeights())
	dir, conf, reasons := g.Generate(model.IndicatorSet{}, 100)

	assert.Equal(t, model.Neutral, dir)
	assert.Equal(t, NeutralConfidence, conf)
	assert.Empty(t, reasons)
}

func TestGenerate_TieIsNeutral(t *testing.T) {
	// Equal weights so an RSI LONG against a Bollinger SHORT is a dead tie.
	w := Weights{RSI: 0.5, MACD: 0.5, MATrend: 0.5, Bollinger: 0.5, Stochastic: 0.5}
	set := model.IndicatorSet{
		RSI:       model.Scalar(20),
		Bollinger: model.BandsValue{Upper: 90, Middle: 80, Lower: 70, Valid: true},
	}
	g := NewGenerator(w)
	dir, conf, reasons := g.Generate(set, 95) // above the upper band

	assert.Equal(t, model.Neutral, dir)
	assert.Equal(t, NeutralConfidence, conf)
	assert.Len(t, reasons, 2)
}

func TestGenerate_UnanimousVoteIsFullConfidence(t *testing.T) {
	set := model.IndicatorSet{
		RSI:        model.Scalar(15),
		MACD:       model.MACDValue{Line: 5, Signal: 2, Histogram: 3, Valid: true},
		SMA20:      model.Scalar(90),
		EMA12:      model.Scalar(101),
		EMA26:      model.Scalar(99),
		Bollinger:  model.BandsValue{Upper: 120, Middle: 110, Lower: 105, Valid: true},
		Stochastic: model.StochValue{K: 10, D: 12, Valid: true},
	}
	g := NewGenerator(DefaultWeights())
	dir, conf, reasons := g.Generate(set, 100) // below the lower band, above SMA20

	assert.Equal(t, model.Long, dir)
	assert.Equal(t, 100.0, conf)
	assert.Len(t, reasons, 5)
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(DefaultWeights())
	set := bullishSet()

	d1, c1, r1 := g.Generate(set, 100)
	d2, c2, r2 := g.Generate(set, 100)

	assert.Equal(t, d1, d2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, r1, r2)
}

func TestGenerate_ConfidenceAlwaysInBounds(t *testing.T) {
	// Weights summing above the nominal total still clamp to [0,100].
	w := Weights{RSI: 1, MACD: 1, MATrend: 1, Bollinger: 1, Stochastic: 1}
	g := NewGenerator(w)
	_, conf, _ := g.Generate(bullishSet(), 100)
	assert.GreaterOrEqual(t, conf, 0.0)
	assert.LessOrEqual(t, conf, 100.0)
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.MACD = 0
	assert.Error(t, bad.Validate())

	bad = DefaultWeights()
	bad.RSI = 1.5
	assert.Error(t, bad.Validate())
}
