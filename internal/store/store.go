package store

import (
	"context"
	"errors"

	"CryptoSentry/internal/model"
)

// ErrConflict is returned by a conditional update that found the record
// already transitioned. Callers treat it as a benign race: another cycle
// handled the transition first.
var ErrConflict = errors.New("state already transitioned")

// ErrNotFound is returned when the record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the single writer of position and alert state. State transitions
// are conditional on the current status so they apply at most once even
// under overlapping monitor cycles.
type Store interface {
	CreatePosition(ctx context.Context, p model.Position) (int64, error)
	GetOpenPositions(ctx context.Context) ([]model.Position, error)
	UpdatePositionPrice(ctx context.Context, id int64, currentPrice, pnl float64) error
	// ClosePosition applies a terminal status, conditional on the position
	// still being OPEN.
	ClosePosition(ctx context.Context, id int64, exitPrice, pnl float64, status model.PositionStatus) error

	CreateAlert(ctx context.Context, a model.Alert) (int64, error)
	GetActiveAlerts(ctx context.Context) ([]model.Alert, error)
	// TriggerAlert marks the alert triggered, conditional on it still being
	// active.
	TriggerAlert(ctx context.Context, id int64, currentPrice float64) error
	DeleteAlert(ctx context.Context, id int64) error

	RecordSignal(ctx context.Context, sig *model.Signal) error
	RecentSignals(ctx context.Context, symbol string, limit int) ([]model.Signal, error)

	Close() error
}
