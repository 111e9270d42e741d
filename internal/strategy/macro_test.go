package strategy

import (
	"errors"
	"testing"
	"time"

	"StockSentinel/internal/model"
)

func macroSeries(symbol string, closes []float64) model.Series {
	s := model.Series{Symbol: symbol, Interval: model.IntervalDaily}
	t0 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s.Bars = append(s.Bars, model.Bar{
			Time: t0.AddDate(0, 0, i), Open: c, High: c * 1.001, Low: c * 0.999, Close: c, Volume: 1,
		})
	}
	return s
}

func TestClassifyRegime_YieldSpikeIsRiskOff(t *testing.T) {
	yield := macroSeries("^TNX", []float64{4.0, 4.05, 4.1, 4.15, 4.2}) // +5% over the span
	dollar := macroSeries("DXY", []float64{104, 104, 104, 104, 104})

	a, err := ClassifyRegime(yield, dollar)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Regime != RegimeRiskOff {
		t.Fatalf("spiking yields must read RISK_OFF, got %s (%s)", a.Regime, a.Reason)
	}
}

func TestClassifyRegime_CoolingYieldIsRiskOn(t *testing.T) {
	yield := macroSeries("^TNX", []float64{4.2, 4.15, 4.1, 4.05, 4.0}) // about -4.8%
	dollar := macroSeries("DXY", []float64{104, 104, 104, 104, 104})

	a, err := ClassifyRegime(yield, dollar)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Regime != RegimeRiskOn {
		t.Fatalf("cooling yields must read RISK_ON, got %s (%s)", a.Regime, a.Reason)
	}
}

func TestClassifyRegime_StrongDollarDegradesOneStep(t *testing.T) {
	yield := macroSeries("^TNX", []float64{4.2, 4.15, 4.1, 4.05, 4.0})
	dollar := macroSeries("DXY", []float64{100, 100.5, 101, 101.5, 102}) // +2%

	a, err := ClassifyRegime(yield, dollar)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Regime != RegimeNeutral {
		t.Fatalf("strong dollar should degrade RISK_ON to NEUTRAL, got %s", a.Regime)
	}

	// Stable yields plus a strong dollar degrade to RISK_OFF.
	flat := macroSeries("^TNX", []float64{4.0, 4.0, 4.0, 4.0, 4.0})
	a, err = ClassifyRegime(flat, dollar)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Regime != RegimeRiskOff {
		t.Fatalf("strong dollar should degrade NEUTRAL to RISK_OFF, got %s", a.Regime)
	}
}

func TestClassifyRegime_WeakDollarUpgradesNeutral(t *testing.T) {
	yield := macroSeries("^TNX", []float64{4.0, 4.0, 4.0, 4.0, 4.0})
	dollar := macroSeries("DXY", []float64{102, 101.5, 101, 100.5, 100}) // about -2%

	a, err := ClassifyRegime(yield, dollar)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if a.Regime != RegimeRiskOn {
		t.Fatalf("weak dollar should lift NEUTRAL to RISK_ON, got %s", a.Regime)
	}
}

func TestClassifyRegime_InsufficientHistory(t *testing.T) {
	yield := macroSeries("^TNX", []float64{4.0, 4.1})
	dollar := macroSeries("DXY", []float64{104, 104, 104, 104, 104})

	_, err := ClassifyRegime(yield, dollar)
	var ihe *InsufficientHistoryError
	if !errors.As(err, &ihe) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if ihe.Symbol != "^TNX" {
		t.Errorf("error should name the short series, got %s", ihe.Symbol)
	}
}
