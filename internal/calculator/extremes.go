package calculator

import (
	"errors"
	"math"

	"CryptoSentry/internal/model"
)

// windowExtremes scans the last `window` bars ending at index end (inclusive)
// and returns the highest high and lowest low.
func windowExtremes(bars []model.OHLCV, end, window int) (high, low float64, err error) {
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	if end < window-1 || end >= len(bars) {
		return 0, 0, errors.New("not enough bars in window")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := end - window + 1; i <= end; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// CalculateWilliamsR computes Williams %R over the given period: the close's
// position within the recent high-low range, scaled to [-100, 0].
func CalculateWilliamsR(bars []model.OHLCV, period int) (float64, error) {
	end := len(bars) - 1
	high, low, err := windowExtremes(bars, end, period)
	if err != nil {
		return 0, err
	}
	if high == low {
		return -50, nil
	}
	return -100 * (high - bars[end].Close) / (high - low), nil
}
