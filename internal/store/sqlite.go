package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CryptoSentry/internal/model"
)

// SQLiteStore persists positions, alerts, and signal history to SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads while the monitor writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS positions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT NOT NULL,
			direction     TEXT NOT NULL,
			entry_price   REAL NOT NULL,
			take_profit   REAL,
			stop_loss     REAL,
			quantity      REAL NOT NULL DEFAULT 1,
			current_price REAL,
			pnl           REAL NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'OPEN',
			created_at    INTEGER NOT NULL,
			closed_at     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_status ON positions(status)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol        TEXT NOT NULL,
			condition     TEXT NOT NULL,
			target_price  REAL NOT NULL,
			current_price REAL,
			is_triggered  INTEGER NOT NULL DEFAULT 0,
			created_at    INTEGER NOT NULL,
			triggered_at  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_triggered ON alerts(is_triggered)`,

		`CREATE TABLE IF NOT EXISTS signals_history (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol       TEXT NOT NULL,
			timeframe    TEXT NOT NULL,
			direction    TEXT NOT NULL,
			confidence   REAL,
			entry_price  REAL,
			take_profit  REAL,
			stop_loss    REAL,
			risk_reward  REAL,
			rsi          REAL,
			macd         REAL,
			macd_signal  REAL,
			sma20        REAL,
			bb_upper     REAL,
			bb_lower     REAL,
			atr          REAL,
			source       TEXT,
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals_history(symbol, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) CreatePosition(ctx context.Context, p model.Position) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `INSERT INTO positions
		(symbol, direction, entry_price, take_profit, stop_loss, quantity, current_price, pnl, status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.Symbol, string(p.Direction), p.EntryPrice, p.TakeProfit, p.StopLoss,
		p.Quantity, p.EntryPrice, 0.0, string(model.PositionOpen), time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetOpenPositions(ctx context.Context) ([]model.Position, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, symbol, direction, entry_price,
		take_profit, stop_loss, quantity, current_price, pnl, status, created_at
		FROM positions WHERE status = ? ORDER BY id`, string(model.PositionOpen))
	if err != nil {
		return nil, fmt.Errorf("query open positions: %w", err)
	}
	defer rows.Close()

	var positions []model.Position
	for rows.Next() {
		var p model.Position
		var direction, status string
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Symbol, &direction, &p.EntryPrice,
			&p.TakeProfit, &p.StopLoss, &p.Quantity, &p.CurrentPrice,
			&p.PnL, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		p.Direction = model.Direction(direction)
		p.Status = model.PositionStatus(status)
		p.CreatedAt = time.Unix(createdAt, 0)
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *SQLiteStore) UpdatePositionPrice(ctx context.Context, id int64, currentPrice, pnl float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE positions SET current_price = ?, pnl = ? WHERE id = ? AND status = ?`,
		currentPrice, pnl, id, string(model.PositionOpen))
	if err != nil {
		return fmt.Errorf("update position price: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClosePosition(ctx context.Context, id int64, exitPrice, pnl float64, status model.PositionStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("close position: %q is not a terminal status", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE positions
		SET status = ?, current_price = ?, pnl = ?, closed_at = ?
		WHERE id = ? AND status = ?`,
		string(status), exitPrice, pnl, time.Now().Unix(), id, string(model.PositionOpen))
	if err != nil {
		return fmt.Errorf("close position: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close position: %w", err)
	}
	if rows == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM positions WHERE id = ?`, id).Scan(&exists); err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) CreateAlert(ctx context.Context, a model.Alert) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `INSERT INTO alerts
		(symbol, condition, target_price, is_triggered, created_at)
		VALUES (?,?,?,0,?)`,
		a.Symbol, string(a.Condition), a.TargetPrice, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert alert: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetActiveAlerts(ctx context.Context) ([]model.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, symbol, condition, target_price, created_at
		FROM alerts WHERE is_triggered = 0 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		var a model.Alert
		var condition string
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.Symbol, &condition, &a.TargetPrice, &createdAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Condition = model.AlertCondition(condition)
		a.CreatedAt = time.Unix(createdAt, 0)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *SQLiteStore) TriggerAlert(ctx context.Context, id int64, currentPrice float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE alerts
		SET is_triggered = 1, current_price = ?, triggered_at = ?
		WHERE id = ? AND is_triggered = 0`,
		currentPrice, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("trigger alert: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("trigger alert: %w", err)
	}
	if rows == 0 {
		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM alerts WHERE id = ?`, id).Scan(&exists); err == nil && exists == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (s *SQLiteStore) DeleteAlert(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) RecordSignal(ctx context.Context, sig *model.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ind := sig.Indicators
	_, err := s.db.ExecContext(ctx, `INSERT INTO signals_history
		(symbol, timeframe, direction, confidence, entry_price, take_profit, stop_loss,
		 risk_reward, rsi, macd, macd_signal, sma20, bb_upper, bb_lower, atr, source, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sig.Symbol, sig.Timeframe, string(sig.Direction), sig.Confidence,
		sig.EntryPrice, sig.TakeProfit, sig.StopLoss, sig.RiskRewardRatio,
		ind.RSI.V, ind.MACD.Line, ind.MACD.Signal, ind.SMA20.V,
		ind.Bollinger.Upper, ind.Bollinger.Lower, ind.ATR.V,
		sig.Source, sig.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentSignals(ctx context.Context, symbol string, limit int) ([]model.Signal, error) {
	query := `SELECT symbol, timeframe, direction, confidence, entry_price,
		take_profit, stop_loss, risk_reward, source, created_at FROM signals_history`
	args := []any{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var signals []model.Signal
	for rows.Next() {
		var sig model.Signal
		var direction string
		var createdAt int64
		if err := rows.Scan(&sig.Symbol, &sig.Timeframe, &direction, &sig.Confidence,
			&sig.EntryPrice, &sig.TakeProfit, &sig.StopLoss, &sig.RiskRewardRatio,
			&sig.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		sig.Direction = model.Direction(direction)
		sig.CreatedAt = time.Unix(createdAt, 0)
		signals = append(signals, sig)
	}
	return signals, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
