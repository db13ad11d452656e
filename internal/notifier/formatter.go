package notifier

import (
	"fmt"
	"strings"
	"time"

	"CryptoSentry/internal/model"
	"CryptoSentry/internal/provider"
)

func directionEmoji(d model.Direction) string {
	switch d {
	case model.Long:
		return "🟢"
	case model.Short:
		return "🔴"
	}
	return "⚪️"
}

// FormatSignal formats a full analysis report into a Telegram message.
func FormatSignal(sig *model.Signal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s Analysis</b> | %s\n\n", sig.Symbol, sig.Timeframe))
	b.WriteString(fmt.Sprintf("Price: %.6g\n", sig.EntryPrice))
	b.WriteString(fmt.Sprintf("%s <b>%s</b> | confidence %.0f%%\n\n", directionEmoji(sig.Direction), sig.Direction, sig.Confidence))

	ind := sig.Indicators
	b.WriteString("📈 <b>Indicators:</b>\n")
	if ind.RSI.Valid {
		b.WriteString(fmt.Sprintf("  RSI(14): %.1f\n", ind.RSI.V))
	}
	if ind.MACD.Valid {
		b.WriteString(fmt.Sprintf("  MACD: %.4g / signal %.4g\n", ind.MACD.Line, ind.MACD.Signal))
	}
	if ind.SMA20.Valid {
		b.WriteString(fmt.Sprintf("  SMA20: %.6g\n", ind.SMA20.V))
	}
	if ind.Bollinger.Valid {
		b.WriteString(fmt.Sprintf("  Bollinger: %.6g / %.6g\n", ind.Bollinger.Lower, ind.Bollinger.Upper))
	}
	if ind.Stochastic.Valid {
		b.WriteString(fmt.Sprintf("  Stoch: K %.1f, D %.1f\n", ind.Stochastic.K, ind.Stochastic.D))
	}
	if ind.ATR.Valid {
		b.WriteString(fmt.Sprintf("  ATR(14): %.6g\n", ind.ATR.V))
	}

	if len(sig.Reasons) > 0 {
		b.WriteString("\n🗳 <b>Votes:</b>\n")
		for _, r := range sig.Reasons {
			b.WriteString(fmt.Sprintf("  %s → %s (×%.1f): %s\n", r.Rule, r.Direction, r.Weight, r.Comment))
		}
	}

	if sig.Direction != model.Neutral {
		b.WriteString("\n🎯 <b>Levels:</b>\n")
		b.WriteString(fmt.Sprintf("  Take profit: %.6g\n", sig.TakeProfit))
		b.WriteString(fmt.Sprintf("  Stop loss: %.6g\n", sig.StopLoss))
		b.WriteString(fmt.Sprintf("  Risk/reward: %.2f\n", sig.RiskRewardRatio))
	}

	b.WriteString(fmt.Sprintf("\nSource: %s | %s", sig.Source, sig.CreatedAt.Format("2006-01-02 15:04")))
	if sig.Source == model.SourceSynthetic {
		b.WriteString("\n⚠️ synthetic data — live sources unavailable")
	}
	return b.String()
}

// FormatEvent formats a monitor event (TP/SL hit or alert trigger).
func FormatEvent(ev model.Event) string {
	switch ev.Kind {
	case model.EventTPHit:
		return fmt.Sprintf("✅ <b>Take profit hit</b>\n\n%s %s #%d\nEntry: %.6g → Exit: %.6g\nPnL: %+.2f%%",
			ev.Symbol, ev.Direction, ev.SubjectID, ev.EntryPrice, ev.ExitPrice, ev.PnL)
	case model.EventSLHit:
		return fmt.Sprintf("🛑 <b>Stop loss hit</b>\n\n%s %s #%d\nEntry: %.6g → Exit: %.6g\nPnL: %+.2f%%",
			ev.Symbol, ev.Direction, ev.SubjectID, ev.EntryPrice, ev.ExitPrice, ev.PnL)
	case model.EventAlertTriggered:
		return fmt.Sprintf("🔔 <b>Price alert</b>\n\n%s is %s %.6g\nCurrent: %.6g",
			ev.Symbol, strings.ToLower(string(ev.Condition)), ev.EntryPrice, ev.ExitPrice)
	}
	return ""
}

// FormatPositions formats the open-position list.
func FormatPositions(positions []model.Position) string {
	if len(positions) == 0 {
		return "📭 No open positions"
	}
	var b strings.Builder
	b.WriteString("💼 <b>Open positions</b>\n\n")
	for _, p := range positions {
		b.WriteString(fmt.Sprintf("#%d %s %s %s\n", p.ID, directionEmoji(p.Direction), p.Symbol, p.Direction))
		b.WriteString(fmt.Sprintf("  Entry %.6g → Now %.6g (%+.2f%%)\n", p.EntryPrice, p.CurrentPrice, p.PnL))
		if p.TakeProfit > 0 || p.StopLoss > 0 {
			b.WriteString(fmt.Sprintf("  TP %.6g | SL %.6g\n", p.TakeProfit, p.StopLoss))
		}
	}
	return b.String()
}

// FormatAlerts formats the active-alert list.
func FormatAlerts(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return "📭 No active alerts"
	}
	var b strings.Builder
	b.WriteString("🔔 <b>Active alerts</b>\n\n")
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf("#%d %s %s %.6g\n", a.ID, a.Symbol, strings.ToLower(string(a.Condition)), a.TargetPrice))
	}
	return b.String()
}

// FormatScreener formats the market overview table.
func FormatScreener(entries []provider.ScreenerEntry) string {
	if len(entries) == 0 {
		return "📭 Screener returned no markets"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔎 <b>Market screener</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	for i, e := range entries {
		arrow := "▲"
		if e.Change24h < 0 {
			arrow = "▼"
		}
		b.WriteString(fmt.Sprintf("%2d. %s %.6g %s%+.2f%%\n", i+1, e.Symbol, e.Price, arrow, e.Change24h))
	}
	return b.String()
}

// FormatSignalHistory formats recent recorded signals.
func FormatSignalHistory(signals []model.Signal) string {
	if len(signals) == 0 {
		return "📭 No recorded signals"
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent signals</b>\n\n")
	for _, s := range signals {
		b.WriteString(fmt.Sprintf("%s %s %s %s %.0f%% @ %.6g\n",
			s.CreatedAt.Format("01-02 15:04"), directionEmoji(s.Direction), s.Symbol, s.Direction, s.Confidence, s.EntryPrice))
	}
	return b.String()
}

// FormatHelp lists available commands.
func FormatHelp() string {
	return `🤖 <b>CryptoSentry commands</b>

/analyze SYMBOL [TIMEFRAME] — full technical analysis
/positions — list open positions
/alerts — list active alerts
/signals [SYMBOL] — recent signal history
/screener — top markets by volume
/help — this message`
}
