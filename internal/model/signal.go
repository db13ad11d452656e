package model

import "time"

// Direction is the directional outcome of an analysis.
type Direction string

const (
	Long    Direction = "LONG"
	Short   Direction = "SHORT"
	Neutral Direction = "NEUTRAL"
)

// VoteReason records why a single rule fired, for the analysis report.
type VoteReason struct {
	Rule      string
	Direction Direction
	Weight    float64
	Comment   string
}

// Signal is the final output of one analysis request. It is never mutated
// after creation.
type Signal struct {
	Symbol          string
	Timeframe       string
	Direction       Direction
	Confidence      float64 // 0..100
	EntryPrice      float64
	TakeProfit      float64
	StopLoss        float64
	RiskRewardRatio float64
	Indicators      IndicatorSet
	Reasons         []VoteReason
	Source          string // provider that supplied the series
	CreatedAt       time.Time
}
