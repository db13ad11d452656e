package monitor

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"CryptoSentry/internal/model"
	"CryptoSentry/internal/store"
)

// PriceSource is the single call the monitor needs from the provider chain.
type PriceSource interface {
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// EventFunc receives monitor events (TP/SL hits, triggered alerts). It is
// called at most once per state transition, after the transition committed.
type EventFunc func(model.Event)

// Monitor periodically checks open positions and active alerts against
// current prices. Cycles never overlap; a cycle that outlasts the interval
// causes the next tick to be skipped.
type Monitor struct {
	cron    *cron.Cron
	source  PriceSource
	store   store.Store
	onEvent EventFunc
	ctx     context.Context
}

// New creates a Monitor. onEvent may be nil when nobody listens.
func New(ctx context.Context, source PriceSource, st store.Store, onEvent EventFunc) *Monitor {
	return &Monitor{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		source:  source,
		store:   st,
		onEvent: onEvent,
		ctx:     ctx,
	}
}

// Start schedules the cycle at the given interval. Intervals below one
// second are rounded up.
func (m *Monitor) Start(interval time.Duration) error {
	if interval < time.Second {
		interval = time.Second
	}
	if _, err := m.cron.AddFunc("@every "+interval.String(), func() { m.RunCycle(m.ctx) }); err != nil {
		return err
	}
	m.cron.Start()
	log.Printf("[INFO] monitor started, interval %s", interval)
	return nil
}

// Stop halts scheduling and waits for an in-flight cycle to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	log.Println("[INFO] monitor stopped")
}

// RunCycle performs one full pass: load open positions and active alerts,
// fetch one price per distinct symbol, evaluate everything against it.
// Symbols are checked concurrently; a failure for one symbol never affects
// the others.
func (m *Monitor) RunCycle(ctx context.Context) {
	positions, err := m.store.GetOpenPositions(ctx)
	if err != nil {
		log.Printf("[ERROR] monitor: load open positions: %v", err)
		positions = nil
	}
	alerts, err := m.store.GetActiveAlerts(ctx)
	if err != nil {
		log.Printf("[ERROR] monitor: load active alerts: %v", err)
		alerts = nil
	}
	if len(positions) == 0 && len(alerts) == 0 {
		return
	}

	type work struct {
		positions []model.Position
		alerts    []model.Alert
	}
	bySymbol := make(map[string]*work)
	for _, p := range positions {
		w := bySymbol[p.Symbol]
		if w == nil {
			w = &work{}
			bySymbol[p.Symbol] = w
		}
		w.positions = append(w.positions, p)
	}
	for _, a := range alerts {
		w := bySymbol[a.Symbol]
		if w == nil {
			w = &work{}
			bySymbol[a.Symbol] = w
		}
		w.alerts = append(w.alerts, a)
	}

	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var wg sync.WaitGroup
	for _, sym := range symbols {
		wg.Add(1)
		go func(symbol string, w *work) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[ERROR] monitor: panic checking %s: %v", symbol, r)
				}
			}()
			m.checkSymbol(ctx, symbol, w.positions, w.alerts)
		}(sym, bySymbol[sym])
	}
	wg.Wait()
}

// checkSymbol fetches one price and evaluates all positions and alerts on
// that symbol against it.
func (m *Monitor) checkSymbol(ctx context.Context, symbol string, positions []model.Position, alerts []model.Alert) {
	price, err := m.source.FetchCurrentPrice(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] monitor: price for %s unavailable, skipping: %v", symbol, err)
		return
	}

	for i := range positions {
		m.checkPosition(ctx, &positions[i], price)
	}
	for i := range alerts {
		m.checkAlert(ctx, &alerts[i], price)
	}
}

func (m *Monitor) checkPosition(ctx context.Context, p *model.Position, price float64) {
	pnl := p.PnLPercent(price)

	status := hitStatus(p, price)
	if status == "" {
		if err := m.store.UpdatePositionPrice(ctx, p.ID, price, pnl); err != nil {
			log.Printf("[ERROR] monitor: update position %d: %v", p.ID, err)
		}
		return
	}

	err := m.store.ClosePosition(ctx, p.ID, price, pnl, status)
	switch {
	case err == nil:
		log.Printf("[INFO] monitor: position %d (%s %s) closed %s at %.6g, pnl %.2f%%",
			p.ID, p.Symbol, p.Direction, status, price, pnl)
		m.emit(model.Event{
			ID:         uuid.NewString(),
			Kind:       model.EventKind(status),
			SubjectID:  p.ID,
			Symbol:     p.Symbol,
			Direction:  p.Direction,
			EntryPrice: p.EntryPrice,
			ExitPrice:  price,
			PnL:        pnl,
			OccurredAt: time.Now(),
		})
	case errors.Is(err, store.ErrConflict):
		// Another cycle closed it first; nothing to do.
	default:
		log.Printf("[ERROR] monitor: close position %d: %v", p.ID, err)
	}
}

// hitStatus decides whether the price crossed the position's TP or SL.
// Unset levels (zero) never fire. When a single price satisfies both,
// take-profit wins for longs and shorts alike because it is checked first
// in the favorable direction.
func hitStatus(p *model.Position, price float64) model.PositionStatus {
	switch p.Direction {
	case model.Long:
		if p.TakeProfit > 0 && price >= p.TakeProfit {
			return model.PositionTPHit
		}
		if p.StopLoss > 0 && price <= p.StopLoss {
			return model.PositionSLHit
		}
	case model.Short:
		if p.TakeProfit > 0 && price <= p.TakeProfit {
			return model.PositionTPHit
		}
		if p.StopLoss > 0 && price >= p.StopLoss {
			return model.PositionSLHit
		}
	}
	return ""
}

func (m *Monitor) checkAlert(ctx context.Context, a *model.Alert, price float64) {
	if !a.Satisfied(price) {
		return
	}

	err := m.store.TriggerAlert(ctx, a.ID, price)
	switch {
	case err == nil:
		log.Printf("[INFO] monitor: alert %d fired: %s %s %.6g (current %.6g)",
			a.ID, a.Symbol, a.Condition, a.TargetPrice, price)
		m.emit(model.Event{
			ID:         uuid.NewString(),
			Kind:       model.EventAlertTriggered,
			SubjectID:  a.ID,
			Symbol:     a.Symbol,
			Condition:  a.Condition,
			EntryPrice: a.TargetPrice,
			ExitPrice:  price,
			OccurredAt: time.Now(),
		})
	case errors.Is(err, store.ErrConflict):
		// Already triggered by a concurrent cycle.
	default:
		log.Printf("[ERROR] monitor: trigger alert %d: %v", a.ID, err)
	}
}

func (m *Monitor) emit(ev model.Event) {
	if m.onEvent != nil {
		m.onEvent(ev)
	}
}
