package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"CryptoSentry/internal/model"
)

// MemoryStore is an in-memory Store with the same conditional-update
// semantics as the SQLite implementation. Used in tests and as a
// no-persistence fallback.
type MemoryStore struct {
	mu          sync.RWMutex
	positions   map[int64]model.Position
	alerts      map[int64]model.Alert
	signals     []model.Signal
	nextPosID   int64
	nextAlertID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		positions: make(map[int64]model.Position),
		alerts:    make(map[int64]model.Alert),
	}
}

func (m *MemoryStore) CreatePosition(_ context.Context, p model.Position) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPosID++
	p.ID = m.nextPosID
	p.Status = model.PositionOpen
	p.CurrentPrice = p.EntryPrice
	p.CreatedAt = time.Now()
	m.positions[p.ID] = p
	return p.ID, nil
}

func (m *MemoryStore) GetOpenPositions(_ context.Context) ([]model.Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Position
	for _, p := range m.positions {
		if p.Status == model.PositionOpen {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) UpdatePositionPrice(_ context.Context, id int64, currentPrice, pnl float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != model.PositionOpen {
		return nil // terminal positions keep their final price
	}
	p.CurrentPrice = currentPrice
	p.PnL = pnl
	m.positions[id] = p
	return nil
}

func (m *MemoryStore) ClosePosition(_ context.Context, id int64, exitPrice, pnl float64, status model.PositionStatus) error {
	if !status.Terminal() {
		return ErrConflict
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status != model.PositionOpen {
		return ErrConflict
	}
	p.Status = status
	p.CurrentPrice = exitPrice
	p.PnL = pnl
	p.ClosedAt = time.Now()
	m.positions[id] = p
	return nil
}

func (m *MemoryStore) CreateAlert(_ context.Context, a model.Alert) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAlertID++
	a.ID = m.nextAlertID
	a.Triggered = false
	a.CreatedAt = time.Now()
	m.alerts[a.ID] = a
	return a.ID, nil
}

func (m *MemoryStore) GetActiveAlerts(_ context.Context) ([]model.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Alert
	for _, a := range m.alerts {
		if !a.Triggered {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) TriggerAlert(_ context.Context, id int64, _ float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return ErrNotFound
	}
	if a.Triggered {
		return ErrConflict
	}
	a.Triggered = true
	a.TriggeredAt = time.Now()
	m.alerts[id] = a
	return nil
}

func (m *MemoryStore) DeleteAlert(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.alerts[id]; !ok {
		return ErrNotFound
	}
	delete(m.alerts, id)
	return nil
}

func (m *MemoryStore) RecordSignal(_ context.Context, sig *model.Signal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signals = append(m.signals, *sig)
	return nil
}

func (m *MemoryStore) RecentSignals(_ context.Context, symbol string, limit int) ([]model.Signal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Signal
	for i := len(m.signals) - 1; i >= 0 && len(out) < limit; i-- {
		if symbol == "" || m.signals[i].Symbol == symbol {
			out = append(out, m.signals[i])
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
