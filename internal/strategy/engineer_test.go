package strategy

import (
	"errors"
	"strings"
	"testing"
	"time"

	"StockSentinel/internal/indicator"
	"StockSentinel/internal/model"
)

func weeklySeries(closes []float64) model.Series {
	s := model.Series{Symbol: "AAPL", Interval: model.IntervalWeekly}
	t0 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s.Bars = append(s.Bars, model.Bar{
			Time:   t0.AddDate(0, 0, 7*i),
			Open:   c,
			High:   c * 1.02,
			Low:    c * 0.98,
			Close:  c,
			Volume: 1000,
		})
	}
	return s
}

func snapshot(ema, rsi, atr, stop float64) indicator.Snapshot {
	return indicator.Snapshot{
		EMA:      indicator.Value{V: ema, Valid: true},
		RSI:      indicator.Value{V: rsi, Valid: true},
		ATR:      indicator.Value{V: atr, Valid: true},
		HardStop: indicator.Value{V: stop, Valid: true},
	}
}

func TestClassify_BuyOnPullback(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	// close 100 > EMA 95, RSI 50 <= 55, stop = 95 - 2 = 93.
	v := e.classify(model.Bar{Close: 100}, 99, 95, snapshot(95, 50, 2, 93))
	if v.Action != model.ActionBuy {
		t.Fatalf("expected BUY, got %s (%s)", v.Action, v.Reason)
	}
	if v.Severity != model.SeveritySuccess {
		t.Errorf("expected success severity, got %s", v.Severity)
	}
}

func TestClassify_SellBelowHardStop(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	// close 92 < stop 93.
	v := e.classify(model.Bar{Close: 92}, 96, 95, snapshot(95, 50, 2, 93))
	if v.Action != model.ActionSell {
		t.Fatalf("expected SELL, got %s", v.Action)
	}
	if !strings.Contains(v.Reason, "93.00") {
		t.Errorf("reason must cite the breached stop level, got %q", v.Reason)
	}
	if v.Levels["hard_stop"] != 93 {
		t.Errorf("levels must carry the stop price, got %v", v.Levels["hard_stop"])
	}
}

func TestClassify_WarningSoftBreach(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	// close 94: below EMA 95 but above stop 93.
	v := e.classify(model.Bar{Close: 94}, 96, 95, snapshot(95, 50, 2, 93))
	if v.Action != model.ActionWarning {
		t.Fatalf("expected WARNING, got %s", v.Action)
	}
	if v.Severity != model.SeverityWarning {
		t.Errorf("expected warning severity, got %s", v.Severity)
	}
}

func TestClassify_SellPrecedesProfitTake(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	// Both the stop breach and the overbought condition hold; the stop wins.
	v := e.classify(model.Bar{Close: 92}, 96, 95, snapshot(95, 80, 2, 93))
	if v.Action != model.ActionSell {
		t.Fatalf("stop breach must take priority over profit-taking, got %s", v.Action)
	}
}

func TestClassify_ProfitTakeOverbought(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	v := e.classify(model.Bar{Close: 100}, 99, 95, snapshot(95, 80, 2, 93))
	if v.Action != model.ActionProfitTake {
		t.Fatalf("expected PROFIT_TAKE, got %s", v.Action)
	}
}

func TestClassify_BreakoutRequiresCross(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())

	// Above EMA on both bars with elevated RSI: no cross, no BUY.
	v := e.classify(model.Bar{Close: 100}, 96, 95, snapshot(95, 60, 2, 93))
	if v.Action != model.ActionHold {
		t.Fatalf("no transition and RSI above gate must HOLD, got %s", v.Action)
	}

	// Previous close at or below the previous EMA: a genuine cross.
	v = e.classify(model.Bar{Close: 100}, 94, 95, snapshot(95, 60, 2, 93))
	if v.Action != model.ActionBuy {
		t.Fatalf("fresh cross above EMA must BUY despite elevated RSI, got %s", v.Action)
	}
}

func TestEvaluate_InsufficientHistory(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())

	_, err := e.Evaluate(weeklySeries([]float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}))
	var ihe *InsufficientHistoryError
	if !errors.As(err, &ihe) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if ihe.Indicator != "ATR" || ihe.Period != 14 {
		t.Errorf("shortest unmet requirement should be ATR(14), got %s(%d)", ihe.Indicator, ihe.Period)
	}

	// 15 bars satisfy ATR and RSI; the EMA requirement is the one unmet.
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	_, err = e.Evaluate(weeklySeries(closes))
	if !errors.As(err, &ihe) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if ihe.Indicator != "EMA" || ihe.Need != 21 {
		t.Errorf("expected EMA needing 21 bars, got %s needing %d", ihe.Indicator, ihe.Need)
	}
}

func TestEvaluate_InvalidSeries(t *testing.T) {
	e := NewEngineer(DefaultEngineerConfig())
	s := weeklySeries([]float64{100, 101, 102})
	s.Bars[1].Close = -1
	_, err := e.Evaluate(s)
	var ise *model.InvalidSeriesError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InvalidSeriesError before any computation, got %v", err)
	}
}

func TestEvaluate_PartialBucketMode(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	s := weeklySeries(closes)
	s.PartialLast = true

	excl := NewEngineer(DefaultEngineerConfig())
	v, err := excl.Evaluate(s)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !v.Bar.Time.Equal(s.Bars[23].Time) {
		t.Errorf("with partial excluded, the last completed bar must be judged, got %v", v.Bar.Time)
	}

	cfg := DefaultEngineerConfig()
	cfg.IncludePartial = true
	incl := NewEngineer(cfg)
	v, err = incl.Evaluate(s)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !v.Bar.Time.Equal(s.Bars[24].Time) {
		t.Errorf("with partial included, the forming bar must be judged, got %v", v.Bar.Time)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%7) - float64(i%3)
	}
	s := weeklySeries(closes)
	e := NewEngineer(DefaultEngineerConfig())

	v1, err := e.Evaluate(s)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	v2, err := e.Evaluate(s)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v1.Action != v2.Action || v1.Reason != v2.Reason {
		t.Fatalf("re-evaluation must be identical: %v vs %v", v1, v2)
	}
	for k, val := range v1.Levels {
		if v2.Levels[k] != val {
			t.Errorf("level %s differs between runs: %v vs %v", k, val, v2.Levels[k])
		}
	}
}
