package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoSentry/internal/model"
)

// implementations returns every Store under test. Both must satisfy the same
// conditional-transition semantics.
func implementations(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func newPosition() model.Position {
	return model.Position{
		Symbol:     "BTCUSDT",
		Direction:  model.Long,
		EntryPrice: 50000,
		TakeProfit: 52000,
		StopLoss:   49000,
		Quantity:   0.5,
	}
}

func TestPositionLifecycle(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := st.CreatePosition(ctx, newPosition())
			require.NoError(t, err)
			require.NotZero(t, id)

			open, err := st.GetOpenPositions(ctx)
			require.NoError(t, err)
			require.Len(t, open, 1)
			assert.Equal(t, model.PositionOpen, open[0].Status)
			assert.Equal(t, 50000.0, open[0].CurrentPrice, "current price starts at entry")

			require.NoError(t, st.UpdatePositionPrice(ctx, id, 51000, 2.0))
			open, err = st.GetOpenPositions(ctx)
			require.NoError(t, err)
			assert.Equal(t, 51000.0, open[0].CurrentPrice)
			assert.Equal(t, 2.0, open[0].PnL)

			require.NoError(t, st.ClosePosition(ctx, id, 52000, 4.0, model.PositionTPHit))
			open, err = st.GetOpenPositions(ctx)
			require.NoError(t, err)
			assert.Empty(t, open)
		})
	}
}

func TestClosePosition_AppliesAtMostOnce(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := st.CreatePosition(ctx, newPosition())
			require.NoError(t, err)

			require.NoError(t, st.ClosePosition(ctx, id, 52000, 4.0, model.PositionTPHit))
			// The losing side of the race sees a conflict, not a second close.
			err = st.ClosePosition(ctx, id, 49000, -2.0, model.PositionSLHit)
			assert.ErrorIs(t, err, ErrConflict)
		})
	}
}

func TestClosePosition_UnknownID(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			err := st.ClosePosition(context.Background(), 9999, 1, 0, model.PositionManually)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClosePosition_RejectsNonTerminalStatus(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := st.CreatePosition(ctx, newPosition())
			require.NoError(t, err)
			assert.Error(t, st.ClosePosition(ctx, id, 1, 0, model.PositionOpen))
		})
	}
}

func TestUpdatePositionPrice_IgnoresClosedPositions(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := st.CreatePosition(ctx, newPosition())
			require.NoError(t, err)
			require.NoError(t, st.ClosePosition(ctx, id, 52000, 4.0, model.PositionTPHit))
			// Stale cycle update after close must not resurrect the record.
			assert.NoError(t, st.UpdatePositionPrice(ctx, id, 48000, -4.0))
			open, err := st.GetOpenPositions(ctx)
			require.NoError(t, err)
			assert.Empty(t, open)
		})
	}
}

func TestAlertLifecycle(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := st.CreateAlert(ctx, model.Alert{
				Symbol: "ETHUSDT", Condition: model.Above, TargetPrice: 4000,
			})
			require.NoError(t, err)

			active, err := st.GetActiveAlerts(ctx)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, model.Above, active[0].Condition)

			require.NoError(t, st.TriggerAlert(ctx, id, 4010))
			active, err = st.GetActiveAlerts(ctx)
			require.NoError(t, err)
			assert.Empty(t, active, "triggered alerts leave the active set")

			// A second trigger is the benign-race conflict.
			assert.ErrorIs(t, st.TriggerAlert(ctx, id, 4020), ErrConflict)
		})
	}
}

func TestTriggerAlert_UnknownID(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, st.TriggerAlert(context.Background(), 777, 1), ErrNotFound)
		})
	}
}

func TestDeleteAlert(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id, err := st.CreateAlert(ctx, model.Alert{
				Symbol: "BTCUSDT", Condition: model.Below, TargetPrice: 40000,
			})
			require.NoError(t, err)

			require.NoError(t, st.DeleteAlert(ctx, id))
			assert.ErrorIs(t, st.DeleteAlert(ctx, id), ErrNotFound)
		})
	}
}

func TestSignalHistory(t *testing.T) {
	for name, st := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)
			for i, sym := range []string{"BTCUSDT", "ETHUSDT", "BTCUSDT"} {
				sig := &model.Signal{
					Symbol:     sym,
					Timeframe:  "1h",
					Direction:  model.Long,
					Confidence: 70,
					EntryPrice: 100,
					Source:     "binance",
					CreatedAt:  base.Add(time.Duration(i) * time.Minute),
				}
				require.NoError(t, st.RecordSignal(ctx, sig))
			}

			btc, err := st.RecentSignals(ctx, "BTCUSDT", 10)
			require.NoError(t, err)
			assert.Len(t, btc, 2)

			all, err := st.RecentSignals(ctx, "", 2)
			require.NoError(t, err)
			assert.Len(t, all, 2, "limit applies")
		})
	}
}
