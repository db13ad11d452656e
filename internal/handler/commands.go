package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"CryptoSentry/internal/analyzer"
	"CryptoSentry/internal/notifier"
	"CryptoSentry/internal/provider"
	"CryptoSentry/internal/store"
)

const (
	defaultTimeframe = "1h"
	screenerLimit    = 10
	historyLimit     = 10
	commandTimeout   = 30 * time.Second
)

// Handler dispatches Telegram commands to the analysis pipeline and store.
type Handler struct {
	Analyzer *analyzer.Analyzer
	Store    store.Store
	Ctx      context.Context
}

func New(ctx context.Context, a *analyzer.Analyzer, st store.Store) *Handler {
	return &Handler{Analyzer: a, Store: st, Ctx: ctx}
}

// HandleCommand processes one user command and returns the reply text.
func (h *Handler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	// Strip the @botname suffix Telegram appends in group chats.
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")

	ctx, cancel := context.WithTimeout(h.Ctx, commandTimeout)
	defer cancel()

	switch cmd {
	case "/start", "/help":
		return notifier.FormatHelp()

	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL [TIMEFRAME], e.g. /analyze BTCUSDT 4h"
		}
		symbol := strings.ToUpper(fields[1])
		timeframe := defaultTimeframe
		if len(fields) >= 3 {
			timeframe = strings.ToLower(fields[2])
		}
		sig, err := h.Analyzer.Analyze(ctx, symbol, timeframe)
		if err != nil {
			if errors.Is(err, provider.ErrDataUnavailable) {
				return fmt.Sprintf("❌ No data source could serve %s right now, try again later", symbol)
			}
			log.Printf("[ERROR] analyze command: %v", err)
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return notifier.FormatSignal(sig)

	case "/positions":
		positions, err := h.Store.GetOpenPositions(ctx)
		if err != nil {
			log.Printf("[ERROR] positions command: %v", err)
			return "❌ Could not load positions"
		}
		return notifier.FormatPositions(positions)

	case "/alerts":
		alerts, err := h.Store.GetActiveAlerts(ctx)
		if err != nil {
			log.Printf("[ERROR] alerts command: %v", err)
			return "❌ Could not load alerts"
		}
		return notifier.FormatAlerts(alerts)

	case "/signals":
		symbol := ""
		if len(fields) >= 2 {
			symbol = strings.ToUpper(fields[1])
		}
		signals, err := h.Store.RecentSignals(ctx, symbol, historyLimit)
		if err != nil {
			log.Printf("[ERROR] signals command: %v", err)
			return "❌ Could not load signal history"
		}
		return notifier.FormatSignalHistory(signals)

	case "/screener":
		entries, err := h.Analyzer.Screener(ctx, screenerLimit)
		if err != nil {
			if errors.Is(err, provider.ErrDataUnavailable) {
				return "❌ Screener unavailable from every data source"
			}
			log.Printf("[ERROR] screener command: %v", err)
			return "❌ Screener failed"
		}
		return notifier.FormatScreener(entries)

	default:
		return notifier.FormatHelp()
	}
}
