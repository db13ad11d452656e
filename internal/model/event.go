package model

import "time"

// EventKind classifies a monitor notification.
type EventKind string

const (
	EventTPHit          EventKind = "TP_HIT"
	EventSLHit          EventKind = "SL_HIT"
	EventAlertTriggered EventKind = "ALERT_TRIGGERED"
)

// Event is emitted exactly once per position/alert state transition, for
// the messaging layer to format and deliver.
type Event struct {
	ID         string // uuid
	Kind       EventKind
	SubjectID  int64 // position or alert ID
	Symbol     string
	Direction  Direction // position direction; alert condition mapped via Condition
	Condition  AlertCondition
	EntryPrice float64 // entry for positions, target for alerts
	ExitPrice  float64 // exit for positions, current for alerts
	PnL        float64 // percent; zero for alerts
	OccurredAt time.Time
}
