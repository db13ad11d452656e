package model

import "time"

// PositionStatus is the lifecycle state of a tracked position.
// OPEN transitions to exactly one of the three terminal states.
type PositionStatus string

const (
	PositionOpen     PositionStatus = "OPEN"
	PositionTPHit    PositionStatus = "TP_HIT"
	PositionSLHit    PositionStatus = "SL_HIT"
	PositionManually PositionStatus = "MANUALLY_CLOSED"
)

// Terminal reports whether the status permits no further transition.
func (s PositionStatus) Terminal() bool {
	return s == PositionTPHit || s == PositionSLHit || s == PositionManually
}

// Position is a tracked (paper) trade. The monitor updates CurrentPrice,
// PnL, and Status; nothing else mutates it after creation.
type Position struct {
	ID           int64
	Symbol       string
	Direction    Direction
	EntryPrice   float64
	TakeProfit   float64
	StopLoss     float64
	Quantity     float64
	CurrentPrice float64
	PnL          float64 // percent of entry, signed
	Status       PositionStatus
	CreatedAt    time.Time
	ClosedAt     time.Time
}

// PnLPercent computes the signed percent move from entry for the direction.
func (p *Position) PnLPercent(current float64) float64 {
	if p.EntryPrice == 0 {
		return 0
	}
	pnl := (current - p.EntryPrice) / p.EntryPrice * 100
	if p.Direction == Short {
		pnl = -pnl
	}
	return pnl
}

// AlertCondition is the comparison an alert applies to the current price.
type AlertCondition string

const (
	Above AlertCondition = "ABOVE"
	Below AlertCondition = "BELOW"
)

// Alert is a one-way price threshold watch: ACTIVE until triggered, then
// permanently TRIGGERED. Re-checking a triggered alert is a no-op.
type Alert struct {
	ID          int64
	Symbol      string
	Condition   AlertCondition
	TargetPrice float64
	Triggered   bool
	CreatedAt   time.Time
	TriggeredAt time.Time
}

// Satisfied reports whether the current price meets the alert condition.
func (a *Alert) Satisfied(current float64) bool {
	switch a.Condition {
	case Above:
		return current >= a.TargetPrice
	case Below:
		return current <= a.TargetPrice
	}
	return false
}
