package scheduler

import (
	"context"
	"fmt"
	"log"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"
	"StockSentinel/internal/recorder"
	"StockSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

// MacroSources names the reference series for regime classification. A nil
// value disables the macro overlay.
type MacroSources struct {
	YieldSymbol  string
	DollarSymbol string
}

// Scheduler manages the weekly and daily scan tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	// Macro symbols are index tickers only Yahoo serves, so they get their
	// own collector regardless of the watchlist provider.
	MacroCollector *collector.Collector
	Macro          *MacroSources
	Watchlist      []string
	Engineer       *strategy.Engineer
	Watchdog       *strategy.Watchdog
	Sizer          strategy.SizerConfig
	Notifier       *notifier.DiscordNotifier
	Recorder       recorder.Recorder
	Ctx            context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col, macroCol *collector.Collector, macro *MacroSources, watchlist []string,
	eng *strategy.Engineer, wd *strategy.Watchdog, sizer strategy.SizerConfig,
	dn *notifier.DiscordNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		MacroCollector: macroCol,
		Macro:          macro,
		Watchlist:      watchlist,
		Engineer:       eng,
		Watchdog:       wd,
		Sizer:          sizer,
		Notifier:       dn,
		Recorder:       rec,
		Ctx:            ctx,
	}
}

// RegisterAll registers the weekly and daily scan tasks.
func (s *Scheduler) RegisterAll(weeklyCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWeeklyNow executes the weekly scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunWeeklyNow() {
	s.weeklyTask()
}

// RunDailyNow executes the daily scan immediately.
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// classifyRegime fetches the macro reference series and classifies the
// regime. Macro data is advisory: a fetch failure degrades to no overlay
// rather than aborting the scan.
func (s *Scheduler) classifyRegime() *strategy.RegimeAssessment {
	if s.Macro == nil || s.MacroCollector == nil {
		return nil
	}
	yield, err := s.MacroCollector.Daily(s.Macro.YieldSymbol)
	if err != nil {
		log.Printf("[WARN] macro yield fetch: %v", err)
		return nil
	}
	dollar, err := s.MacroCollector.Daily(s.Macro.DollarSymbol)
	if err != nil {
		log.Printf("[WARN] macro dollar fetch: %v", err)
		return nil
	}
	assessment, err := strategy.ClassifyRegime(yield, dollar)
	if err != nil {
		log.Printf("[WARN] macro classification: %v", err)
		return nil
	}
	return assessment
}

func regimeOf(a *strategy.RegimeAssessment) strategy.Regime {
	if a == nil {
		return strategy.RegimeNeutral
	}
	return a.Regime
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly scan")
	regime := s.classifyRegime()

	var entries []notifier.WeeklyEntry
	for _, symbol := range s.Watchlist {
		weekly, err := s.Collector.Weekly(symbol)
		if err != nil {
			log.Printf("[ERROR] weekly collect %s: %v", symbol, err)
			continue
		}
		verdict, err := s.Engineer.Evaluate(weekly)
		if err != nil {
			log.Printf("[ERROR] weekly evaluate %s: %v", symbol, err)
			continue
		}

		var pos *strategy.Position
		if verdict.Action == model.ActionBuy {
			p := strategy.SizePosition(s.Sizer, verdict.Levels["close"], verdict.Levels["hard_stop"], regimeOf(regime))
			pos = &p
		}
		entries = append(entries, notifier.WeeklyEntry{Verdict: verdict, Position: pos})
		log.Printf("[INFO] %s: %s (%s)", symbol, verdict.Action, verdict.Reason)

		rec := &recorder.WeeklyRecord{
			Symbol:   verdict.Symbol,
			Action:   string(verdict.Action),
			Severity: string(verdict.Severity),
			Reason:   verdict.Reason,
			Close:    verdict.Levels["close"],
			EMA:      verdict.Levels["ema"],
			RSI:      verdict.Levels["rsi"],
			ATR:      verdict.Levels["atr"],
			HardStop: verdict.Levels["hard_stop"],
			Regime:   string(regimeOf(regime)),
		}
		if pos != nil {
			rec.Shares = pos.Shares
			rec.PositionValue = pos.Value
		}
		if err := s.Recorder.RecordWeekly(rec); err != nil {
			log.Printf("[ERROR] record weekly %s: %v", symbol, err)
		}
	}

	s.trySend(notifier.FormatWeeklyReport(entries, regime))
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily scan")
	for _, symbol := range s.Watchlist {
		daily, err := s.Collector.Daily(symbol)
		if err != nil {
			log.Printf("[ERROR] daily collect %s: %v", symbol, err)
			continue
		}
		verdicts, err := s.Watchdog.Evaluate(daily)
		if err != nil {
			log.Printf("[ERROR] daily evaluate %s: %v", symbol, err)
			continue
		}
		if len(verdicts) == 0 {
			continue
		}

		log.Printf("[INFO] %s: %d daily alert(s)", symbol, len(verdicts))
		s.trySend(notifier.FormatDailyAlerts(verdicts))

		for _, v := range verdicts {
			if err := s.Recorder.RecordDaily(&recorder.DailyRecord{
				Symbol:    v.Symbol,
				Action:    string(v.Action),
				Severity:  string(v.Severity),
				Reason:    v.Reason,
				Close:     v.Levels["close"],
				ChangePct: v.Levels["change_pct"],
				VolRatio:  v.Levels["vol_ratio"],
			}); err != nil {
				log.Printf("[ERROR] record daily %s: %v", symbol, err)
			}
		}
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
