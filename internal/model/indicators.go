package model

// Value is a scalar indicator slot. Valid is false when the series was too
// short for the indicator's lookback window.
type Value struct {
	V     float64
	Valid bool
}

// Scalar wraps a computed value in a valid slot.
func Scalar(v float64) Value { return Value{V: v, Valid: true} }

// MACDValue holds the MACD line, its signal line, and the histogram.
type MACDValue struct {
	Line      float64
	Signal    float64
	Histogram float64
	Valid     bool
}

// BandsValue holds the Bollinger band levels.
type BandsValue struct {
	Upper  float64
	Middle float64
	Lower  float64
	Valid  bool
}

// StochValue holds the smoothed %K and %D lines.
type StochValue struct {
	K     float64
	D     float64
	Valid bool
}

// IndicatorSet is the latest value of every computed indicator for one
// PriceSeries snapshot. Slots whose lookback exceeds the series length are
// left invalid rather than failing the whole set.
type IndicatorSet struct {
	RSI        Value
	MACD       MACDValue
	SMA20      Value
	EMA12      Value
	EMA26      Value
	EMA50      Value
	Bollinger  BandsValue
	ATR        Value
	Stochastic StochValue
	WilliamsR  Value
	ADX        Value
	OBV        Value
	VolumeSMA  Value
}
