package strategy

import (
	"errors"
	"math"

	"CryptoSentry/internal/model"
)

// TP/SL distances as ATR multiples. The risk/reward ratio is recomputed
// from the resulting levels rather than hard-coded, so it stays correct if
// these change.
const (
	TakeProfitATRMult = 2.5
	StopLossATRMult   = 1.5

	// atrFallbackPct substitutes a fraction of the entry price when no ATR
	// could be computed from the series.
	atrFallbackPct = 0.02
)

// ErrNeutralDirection is returned when risk levels are requested for a
// direction that has none.
var ErrNeutralDirection = errors.New("no risk levels for a neutral direction")

// Levels derives take-profit, stop-loss, and the risk/reward ratio from the
// signal direction, entry price, and volatility. Pass atr <= 0 to use the
// percentage fallback.
func Levels(direction model.Direction, entry, atr float64) (takeProfit, stopLoss, riskReward float64, err error) {
	if direction == model.Neutral {
		return 0, 0, 0, ErrNeutralDirection
	}
	if entry <= 0 {
		return 0, 0, 0, errors.New("entry price must be positive")
	}
	if atr <= 0 {
		atr = entry * atrFallbackPct
	}

	switch direction {
	case model.Long:
		takeProfit = entry + TakeProfitATRMult*atr
		stopLoss = entry - StopLossATRMult*atr
	case model.Short:
		takeProfit = entry - TakeProfitATRMult*atr
		stopLoss = entry + StopLossATRMult*atr
	default:
		return 0, 0, 0, errors.New("unknown direction")
	}

	risk := math.Abs(entry - stopLoss)
	if risk == 0 {
		return 0, 0, 0, errors.New("zero risk distance")
	}
	riskReward = math.Abs(takeProfit-entry) / risk
	return takeProfit, stopLoss, riskReward, nil
}
