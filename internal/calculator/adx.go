package calculator

import (
	"errors"
	"math"

	"CryptoSentry/internal/model"
)

// CalculateADX computes the Average Directional Index with Wilder smoothing.
// Requires at least 2*period+1 bars for the first converged ADX value.
func CalculateADX(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < 2*period+1 {
		return 0, errors.New("not enough data for ADX calculation")
	}

	// Directional movement and true range per bar.
	n := len(bars) - 1
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i <= n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
		tr[i-1] = trueRange(bars[i], bars[i-1].Close)
	}

	// Wilder-smoothed sums.
	var smPlus, smMinus, smTR float64
	for i := 0; i < period; i++ {
		smPlus += plusDM[i]
		smMinus += minusDM[i]
		smTR += tr[i]
	}

	dx := func() float64 {
		if smTR == 0 {
			return 0
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		if plusDI+minusDI == 0 {
			return 0
		}
		return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	// First ADX seed: average of the first `period` DX values.
	adx := dx()
	count := 1
	var adxSeeded bool
	for i := period; i < n; i++ {
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		smTR = smTR - smTR/float64(period) + tr[i]
		d := dx()
		if !adxSeeded {
			adx += d
			count++
			if count == period {
				adx /= float64(period)
				adxSeeded = true
			}
		} else {
			adx = (adx*float64(period-1) + d) / float64(period)
		}
	}
	if !adxSeeded {
		adx /= float64(count)
	}
	return adx, nil
}
