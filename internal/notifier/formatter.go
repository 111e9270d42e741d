package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
)

// WeeklyEntry pairs one instrument's verdict with its sizing recommendation.
// Position is nil for non-BUY verdicts.
type WeeklyEntry struct {
	Verdict  *model.Verdict
	Position *strategy.Position
}

func severityEmoji(sev model.Severity) string {
	switch sev {
	case model.SeveritySuccess:
		return "✅"
	case model.SeverityWarning:
		return "⚠️"
	case model.SeverityDanger:
		return "🚨"
	default:
		return "ℹ️"
	}
}

// FormatWeeklyReport renders the weekly scan into a Discord message.
func FormatWeeklyReport(entries []WeeklyEntry, regime *strategy.RegimeAssessment) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 **StockSentinel Weekly Scan** | %s\n\n", time.Now().Format("2006-01-02")))

	if regime != nil {
		b.WriteString(fmt.Sprintf("Macro regime: **%s** - %s\n\n", regime.Regime, regime.Reason))
	}

	for _, e := range entries {
		v := e.Verdict
		b.WriteString(fmt.Sprintf("%s **%s** - %s @ %.2f\n", severityEmoji(v.Severity), v.Symbol, v.Action, v.Bar.Close))
		b.WriteString(fmt.Sprintf("   %s\n", v.Reason))
		if ema, ok := v.Levels["ema"]; ok {
			b.WriteString(fmt.Sprintf("   EMA %.2f | RSI %.1f | stop %.2f\n",
				ema, v.Levels["rsi"], v.Levels["hard_stop"]))
		}
		if e.Position != nil && e.Position.Shares > 0 {
			b.WriteString(fmt.Sprintf("   Sizing: %d shares (≈%.0f), risk %.2f (%.2f%% of account)\n",
				e.Position.Shares, e.Position.Value, e.Position.RiskAmount, e.Position.RiskPctOfAccount))
		}
		b.WriteString("\n")
	}

	if len(entries) == 0 {
		b.WriteString("No instruments evaluated.\n")
	}
	return b.String()
}

// FormatDailyAlerts renders watchdog verdicts for one instrument.
func FormatDailyAlerts(verdicts []model.Verdict) string {
	if len(verdicts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 **%s Daily Alert** | %s\n", verdicts[0].Symbol, time.Now().Format("2006-01-02")))
	for _, v := range verdicts {
		b.WriteString(fmt.Sprintf("%s %s: %s\n", severityEmoji(v.Severity), v.Action, v.Reason))
	}
	b.WriteString(fmt.Sprintf("Price: %.2f (%+.2f%%)\n", verdicts[0].Bar.Close, verdicts[0].Levels["change_pct"]))
	return b.String()
}
