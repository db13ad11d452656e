package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentry/internal/model"
	"CryptoSentry/internal/provider"
	"CryptoSentry/internal/store"
	"CryptoSentry/internal/strategy"
)

// newOfflineAnalyzer runs the whole pipeline against the deterministic
// synthetic provider, so the test exercises fetch, indicators, voting, and
// risk levels end to end without a network.
func newOfflineAnalyzer(st store.Store) *Analyzer {
	synth := provider.NewSyntheticFetcher()
	synth.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	sel := provider.NewSelector(time.Second, time.Nanosecond, synth)
	return New(sel, strategy.DefaultWeights(), st)
}

func TestAnalyze_EndToEnd(t *testing.T) {
	st := store.NewMemoryStore()
	a := newOfflineAnalyzer(st)

	sig, err := a.Analyze(context.Background(), "BTCUSDT", "1h")
	require.NoError(t, err)
	require.NotNil(t, sig)

	assert.Equal(t, "BTCUSDT", sig.Symbol)
	assert.Equal(t, "1h", sig.Timeframe)
	assert.Equal(t, model.SourceSynthetic, sig.Source)
	assert.Greater(t, sig.EntryPrice, 0.0)
	assert.Contains(t, []model.Direction{model.Long, model.Short, model.Neutral}, sig.Direction)
	assert.GreaterOrEqual(t, sig.Confidence, 0.0)
	assert.LessOrEqual(t, sig.Confidence, 100.0)

	switch sig.Direction {
	case model.Long:
		assert.Greater(t, sig.TakeProfit, sig.EntryPrice)
		assert.Less(t, sig.StopLoss, sig.EntryPrice)
		assert.Greater(t, sig.RiskRewardRatio, 0.0)
	case model.Short:
		assert.Less(t, sig.TakeProfit, sig.EntryPrice)
		assert.Greater(t, sig.StopLoss, sig.EntryPrice)
		assert.Greater(t, sig.RiskRewardRatio, 0.0)
	case model.Neutral:
		assert.Zero(t, sig.TakeProfit)
		assert.Zero(t, sig.StopLoss)
		assert.Equal(t, strategy.NeutralConfidence, sig.Confidence)
	}
}

func TestAnalyze_RecordsHistory(t *testing.T) {
	st := store.NewMemoryStore()
	a := newOfflineAnalyzer(st)

	_, err := a.Analyze(context.Background(), "ETHUSDT", "4h")
	require.NoError(t, err)

	recorded, err := st.RecentSignals(context.Background(), "ETHUSDT", 5)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "4h", recorded[0].Timeframe)
}

func TestAnalyze_Deterministic(t *testing.T) {
	st := store.NewMemoryStore()
	a := newOfflineAnalyzer(st)

	first, err := a.Analyze(context.Background(), "SOLUSDT", "1h")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "SOLUSDT", "1h")
	require.NoError(t, err)

	assert.Equal(t, first.Direction, second.Direction)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.EntryPrice, second.EntryPrice)
}

func TestScreener_Offline(t *testing.T) {
	a := newOfflineAnalyzer(store.NewMemoryStore())
	entries, err := a.Screener(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}
