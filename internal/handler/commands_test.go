package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentry/internal/analyzer"
	"CryptoSentry/internal/model"
	"CryptoSentry/internal/provider"
	"CryptoSentry/internal/store"
	"CryptoSentry/internal/strategy"
)

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	t.Helper()
	synth := provider.NewSyntheticFetcher()
	synth.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	sel := provider.NewSelector(time.Second, time.Nanosecond, synth)
	st := store.NewMemoryStore()
	return New(context.Background(), analyzer.New(sel, strategy.DefaultWeights(), st), st), st
}

func TestHandleCommand_Help(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, cmd := range []string{"/help", "/start", "/bogus"} {
		assert.Contains(t, h.HandleCommand(cmd), "/analyze", "command %q", cmd)
	}
}

func TestHandleCommand_EmptyInput(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Empty(t, h.HandleCommand("   "))
}

func TestHandleCommand_AnalyzeUsage(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/analyze"), "Usage")
}

func TestHandleCommand_Analyze(t *testing.T) {
	h, st := newTestHandler(t)

	out := h.HandleCommand("/analyze btcusdt 4h")
	assert.Contains(t, out, "BTCUSDT", "symbol is upper-cased")
	assert.Contains(t, out, "4h")

	recorded, err := st.RecentSignals(context.Background(), "BTCUSDT", 5)
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestHandleCommand_AnalyzeDefaultTimeframe(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/analyze ETHUSDT"), "1h")
}

func TestHandleCommand_BotNameSuffixStripped(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/help@CryptoSentryBot"), "/analyze")
}

func TestHandleCommand_Positions(t *testing.T) {
	h, st := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/positions"), "No open positions")

	_, err := st.CreatePosition(context.Background(), model.Position{
		Symbol: "BTCUSDT", Direction: model.Long, EntryPrice: 50000, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Contains(t, h.HandleCommand("/positions"), "BTCUSDT")
}

func TestHandleCommand_Alerts(t *testing.T) {
	h, st := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/alerts"), "No active alerts")

	_, err := st.CreateAlert(context.Background(), model.Alert{
		Symbol: "ETHUSDT", Condition: model.Above, TargetPrice: 4000,
	})
	require.NoError(t, err)
	assert.Contains(t, h.HandleCommand("/alerts"), "ETHUSDT")
}

func TestHandleCommand_Signals(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/signals"), "No recorded signals")

	h.HandleCommand("/analyze BTCUSDT")
	assert.Contains(t, h.HandleCommand("/signals BTCUSDT"), "BTCUSDT")
}

func TestHandleCommand_Screener(t *testing.T) {
	h, _ := newTestHandler(t)
	assert.Contains(t, h.HandleCommand("/screener"), "Market screener")
}
