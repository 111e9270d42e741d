package strategy

import (
	"fmt"

	"StockSentinel/internal/indicator"
	"StockSentinel/internal/model"
)

// Watchdog is the daily anomaly detector. Independent anomaly classes can
// co-occur on the same bar, so one evaluation may emit zero, one, or several
// verdicts; co-occurring classes are never merged or suppressed.
type Watchdog struct {
	cfg WatchdogConfig
}

// NewWatchdog creates a Watchdog with the given parameters.
func NewWatchdog(cfg WatchdogConfig) *Watchdog {
	return &Watchdog{cfg: cfg}
}

// Evaluate inspects the most recent daily bar against the prior close, the
// trailing average volume and the rolling high over the lookback window.
func (w *Watchdog) Evaluate(s model.Series) ([]model.Verdict, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	bars := s.Bars
	reqs := []requirement{
		{indicator: "previous close", period: 1, need: 2},
		{indicator: "RSI", period: w.cfg.RSIPeriod, need: w.cfg.RSIPeriod + 1},
		{indicator: "trailing volume", period: w.cfg.Lookback, need: w.cfg.Lookback + 1},
		{indicator: "rolling high", period: w.cfg.Lookback, need: w.cfg.Lookback + 1},
	}
	if err := checkHistory(s.Symbol, len(bars), reqs); err != nil {
		return nil, err
	}

	rsi, err := indicator.RSI(bars, w.cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}

	last := len(bars) - 1
	cur := bars[last]
	prevClose := bars[last-1].Close
	changePct := (cur.Close - prevClose) / prevClose * 100

	var verdicts []model.Verdict
	emit := func(action model.Action, sev model.Severity, reason string, levels map[string]float64) {
		levels["close"] = cur.Close
		levels["change_pct"] = changePct
		verdicts = append(verdicts, model.Verdict{
			Symbol:   s.Symbol,
			Action:   action,
			Severity: sev,
			Bar:      cur,
			Reason:   reason,
			Levels:   levels,
		})
	}

	// A. Flash crash. Severity scales with the size of the drop.
	if changePct <= w.cfg.CrashThresholdPct {
		sev := model.SeverityWarning
		if changePct <= 2*w.cfg.CrashThresholdPct {
			sev = model.SeverityDanger
		}
		emit(model.ActionFlashCrash, sev,
			fmt.Sprintf("Flash crash: dropped %.2f%% in one session", changePct),
			map[string]float64{"prev_close": prevClose})
	}

	// B. Surge.
	if changePct >= w.cfg.SurgeThresholdPct {
		emit(model.ActionSurge, model.SeveritySuccess,
			fmt.Sprintf("Surge: gained %.2f%% in one session", changePct),
			map[string]float64{"prev_close": prevClose})
	}

	// C. Volume spike against the trailing average, current bar excluded.
	avgVol := 0.0
	for i := last - w.cfg.Lookback; i < last; i++ {
		avgVol += bars[i].Volume
	}
	avgVol /= float64(w.cfg.Lookback)
	if avgVol > 0 && cur.Volume >= w.cfg.VolumeSpikeMult*avgVol {
		ratio := cur.Volume / avgVol
		direction := "flat price"
		if changePct > 0 {
			direction = fmt.Sprintf("%.2f%% up move", changePct)
		} else if changePct < 0 {
			direction = fmt.Sprintf("%.2f%% down move", changePct)
		}
		emit(model.ActionVolumeSpike, model.SeverityWarning,
			fmt.Sprintf("Volume spike: %.1fx average volume on a %s", ratio, direction),
			map[string]float64{"volume": cur.Volume, "avg_volume": avgVol, "vol_ratio": ratio})
	}

	// D. Breakout above the rolling high-water mark of the prior window.
	rollingHigh := bars[last-w.cfg.Lookback].High
	for i := last - w.cfg.Lookback + 1; i < last; i++ {
		if bars[i].High > rollingHigh {
			rollingHigh = bars[i].High
		}
	}
	if cur.Close > rollingHigh {
		magnitude := (cur.Close - rollingHigh) / rollingHigh * 100
		emit(model.ActionBreakout, model.SeverityInfo,
			fmt.Sprintf("Breakout: closed %.2f%% above the %d-day high (%.2f)", magnitude, w.cfg.Lookback, rollingHigh),
			map[string]float64{"rolling_high": rollingHigh, "breakout_pct": magnitude})
	}

	// E. Oversold.
	if v, ok := rsi.Last(); ok && v < w.cfg.RSIOversold {
		emit(model.ActionOversold, model.SeverityInfo,
			fmt.Sprintf("Oversold zone: RSI %.1f < %.0f", v, w.cfg.RSIOversold),
			map[string]float64{"rsi": v})
	}

	return verdicts, nil
}
