package calculator

import (
	"errors"
	"math"
)

// CalculateBollinger computes the Bollinger Bands: middle = SMA(period),
// upper/lower = middle +/- mult * population stddev over the same window.
func CalculateBollinger(prices []float64, period int, mult float64) (upper, middle, lower float64, err error) {
	if mult <= 0 {
		return 0, 0, 0, errors.New("band multiplier must be positive")
	}
	middle, err = CalculateSMA(prices, period)
	if err != nil {
		return 0, 0, 0, err
	}
	variance := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		d := prices[i] - middle
		variance += d * d
	}
	std := math.Sqrt(variance / float64(period))
	return middle + mult*std, middle, middle - mult*std, nil
}
