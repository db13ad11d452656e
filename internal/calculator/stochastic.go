package calculator

import (
	"errors"

	"CryptoSentry/internal/model"
)

// CalculateStochastic computes the slow Stochastic Oscillator: raw %K over
// periodK bars, smoothed by an SMA of smoothK, and %D as an SMA of %K over
// periodD. Requires periodK+smoothK+periodD-2 bars.
func CalculateStochastic(bars []model.OHLCV, periodK, smoothK, periodD int) (k, d float64, err error) {
	if periodK <= 0 || smoothK <= 0 || periodD <= 0 {
		return 0, 0, errors.New("all stochastic periods must be positive")
	}
	need := periodK + smoothK + periodD - 2
	if len(bars) < need {
		return 0, 0, errors.New("not enough data for stochastic calculation")
	}

	raw := func(end int) (float64, error) {
		high, low, err := windowExtremes(bars, end, periodK)
		if err != nil {
			return 0, err
		}
		if high == low {
			return 50, nil // no range, middle value
		}
		return 100 * (bars[end].Close - low) / (high - low), nil
	}

	// Smoothed %K for the last periodD bars, each an SMA of smoothK raws.
	kValues := make([]float64, periodD)
	for j := 0; j < periodD; j++ {
		end := len(bars) - 1 - (periodD - 1 - j)
		sum := 0.0
		for m := 0; m < smoothK; m++ {
			r, err := raw(end - m)
			if err != nil {
				return 0, 0, err
			}
			sum += r
		}
		kValues[j] = sum / float64(smoothK)
	}

	dSum := 0.0
	for _, v := range kValues {
		dSum += v
	}
	return kValues[periodD-1], dSum / float64(periodD), nil
}
