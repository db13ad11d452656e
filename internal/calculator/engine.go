package calculator

import "CryptoSentry/internal/model"

// Standard parameterization shared by the engine and the strategy rules.
const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignal       = 9
	SMAPeriod        = 20
	BollingerPeriod  = 20
	BollingerMult    = 2.0
	ATRPeriod        = 14
	StochasticK      = 14
	StochasticSmooth = 3
	StochasticD      = 3
	WilliamsPeriod   = 14
	ADXPeriod        = 14
	VolumeSMAPeriod  = 20
)

// Compute derives the full indicator set from a price series snapshot.
// Indicators whose lookback window exceeds the series length are left
// invalid so downstream logic can degrade gracefully; a short series is
// not an error.
func Compute(series *model.PriceSeries) model.IndicatorSet {
	var set model.IndicatorSet
	closes := series.Closes()
	bars := series.Bars

	if v, err := CalculateRSI(closes, RSIPeriod); err == nil {
		set.RSI = model.Scalar(v)
	}
	if line, sig, hist, err := CalculateMACD(closes, MACDFast, MACDSlow, MACDSignal); err == nil {
		set.MACD = model.MACDValue{Line: line, Signal: sig, Histogram: hist, Valid: true}
	}
	if v, err := CalculateSMA(closes, SMAPeriod); err == nil {
		set.SMA20 = model.Scalar(v)
	}
	if v, err := CalculateEMA(closes, MACDFast); err == nil {
		set.EMA12 = model.Scalar(v)
	}
	if v, err := CalculateEMA(closes, MACDSlow); err == nil {
		set.EMA26 = model.Scalar(v)
	}
	if v, err := CalculateEMA(closes, 50); err == nil {
		set.EMA50 = model.Scalar(v)
	}
	if up, mid, low, err := CalculateBollinger(closes, BollingerPeriod, BollingerMult); err == nil {
		set.Bollinger = model.BandsValue{Upper: up, Middle: mid, Lower: low, Valid: true}
	}
	if v, err := CalculateATR(bars, ATRPeriod); err == nil {
		set.ATR = model.Scalar(v)
	}
	if k, d, err := CalculateStochastic(bars, StochasticK, StochasticSmooth, StochasticD); err == nil {
		set.Stochastic = model.StochValue{K: k, D: d, Valid: true}
	}
	if v, err := CalculateWilliamsR(bars, WilliamsPeriod); err == nil {
		set.WilliamsR = model.Scalar(v)
	}
	if v, err := CalculateADX(bars, ADXPeriod); err == nil {
		set.ADX = model.Scalar(v)
	}
	if v, err := CalculateOBV(bars); err == nil {
		set.OBV = model.Scalar(v)
	}
	if v, err := CalculateVolumeSMA(bars, VolumeSMAPeriod); err == nil {
		set.VolumeSMA = model.Scalar(v)
	}
	return set
}
