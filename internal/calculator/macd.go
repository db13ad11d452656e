package calculator

import "errors"

// MACDSeries computes the MACD line, signal line, and histogram for every
// bar where all three are defined. The slices are aligned with each other;
// macdSeries[i] corresponds to the same bar as signalSeries[i].
func MACDSeries(prices []float64, fast, slow, signal int) (macdLine, signalLine, histogram []float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 || fast >= slow {
		return nil, nil, nil, errors.New("invalid MACD periods")
	}
	if len(prices) < slow+signal {
		return nil, nil, nil, errors.New("not enough data for MACD calculation")
	}

	fastEMA, err := emaSeries(prices, fast)
	if err != nil {
		return nil, nil, nil, err
	}
	slowEMA, err := emaSeries(prices, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	// Both series end at the last bar; align the fast series to the slow one.
	offset := len(fastEMA) - len(slowEMA)
	macd := make([]float64, len(slowEMA))
	for i := range slowEMA {
		macd[i] = fastEMA[i+offset] - slowEMA[i]
	}

	sig, err := emaSeries(macd, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	// Trim the MACD line to the span where the signal line exists.
	macd = macd[len(macd)-len(sig):]
	hist := make([]float64, len(sig))
	for i := range sig {
		hist[i] = macd[i] - sig[i]
	}
	return macd, sig, hist, nil
}

// CalculateMACD returns the latest MACD line, signal line, and histogram
// using the conventional 12/26/9 parameters.
func CalculateMACD(prices []float64, fast, slow, signal int) (line, sig, hist float64, err error) {
	macd, sigSeries, histSeries, err := MACDSeries(prices, fast, slow, signal)
	if err != nil {
		return 0, 0, 0, err
	}
	n := len(sigSeries) - 1
	return macd[n], sigSeries[n], histSeries[n], nil
}
