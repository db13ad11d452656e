package calculator

import (
	"errors"

	"CryptoSentry/internal/model"
)

// CalculateOBV computes On-Balance Volume: a running total that adds the
// bar's volume on up-closes and subtracts it on down-closes.
func CalculateOBV(bars []model.OHLCV) (float64, error) {
	if len(bars) < 2 {
		return 0, errors.New("not enough data for OBV calculation")
	}
	obv := 0.0
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
	}
	return obv, nil
}

// CalculateVolumeSMA computes the simple moving average of volume.
func CalculateVolumeSMA(bars []model.OHLCV, period int) (float64, error) {
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return CalculateSMA(volumes, period)
}
