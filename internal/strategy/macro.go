package strategy

import (
	"fmt"
	"strings"

	"StockSentinel/internal/model"
)

// Regime classifies the macro environment for risk appetite.
type Regime string

const (
	RegimeRiskOn  Regime = "RISK_ON"
	RegimeNeutral Regime = "NEUTRAL"
	RegimeRiskOff Regime = "RISK_OFF"
)

// RegimeAssessment is the outcome of a macro classification.
type RegimeAssessment struct {
	Regime          Regime
	YieldCurrent    float64
	YieldChangePct  float64
	DollarCurrent   float64
	DollarChangePct float64
	Reason          string
}

const (
	macroSpan           = 5   // bars back for the change measurement
	yieldSpikeThreshold = 3.0 // percent move in the 10Y yield over the span
	dxySpikeThreshold   = 1.0 // percent move in the dollar index over the span
)

// ClassifyRegime derives the market regime from a 10-year-yield series and a
// dollar-index series. Spiking yields are hostile to long-duration equities;
// a strengthening dollar drains liquidity, so it degrades the regime one
// step rather than flipping it outright.
func ClassifyRegime(yield, dollar model.Series) (*RegimeAssessment, error) {
	for _, s := range []model.Series{yield, dollar} {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if len(s.Bars) < macroSpan {
			return nil, &InsufficientHistoryError{
				Symbol:    s.Symbol,
				Indicator: "macro change",
				Period:    macroSpan,
				Need:      macroSpan,
				Have:      len(s.Bars),
			}
		}
	}

	yCur, yChg := spanChange(yield)
	dCur, dChg := spanChange(dollar)

	regime := RegimeNeutral
	var reasons []string

	switch {
	case yChg > yieldSpikeThreshold:
		regime = RegimeRiskOff
		reasons = append(reasons, fmt.Sprintf("10Y yield spiking (%+.2f%% in %dd)", yChg, macroSpan))
	case yChg < -yieldSpikeThreshold:
		regime = RegimeRiskOn
		reasons = append(reasons, fmt.Sprintf("10Y yield cooling (%+.2f%% in %dd)", yChg, macroSpan))
	default:
		reasons = append(reasons, fmt.Sprintf("10Y yield stable (%+.2f%%)", yChg))
	}

	switch {
	case dChg > dxySpikeThreshold:
		if regime == RegimeRiskOn {
			regime = RegimeNeutral
		} else if regime == RegimeNeutral {
			regime = RegimeRiskOff
		}
		reasons = append(reasons, fmt.Sprintf("dollar strengthening (%+.2f%%)", dChg))
	case dChg < -dxySpikeThreshold:
		if regime == RegimeNeutral {
			regime = RegimeRiskOn
		}
		reasons = append(reasons, fmt.Sprintf("dollar weakening (%+.2f%%)", dChg))
	}

	return &RegimeAssessment{
		Regime:          regime,
		YieldCurrent:    yCur,
		YieldChangePct:  yChg,
		DollarCurrent:   dCur,
		DollarChangePct: dChg,
		Reason:          strings.Join(reasons, " | "),
	}, nil
}

// spanChange returns the latest close and its percent change versus
// macroSpan bars earlier.
func spanChange(s model.Series) (current, changePct float64) {
	n := len(s.Bars)
	current = s.Bars[n-1].Close
	base := s.Bars[n-macroSpan].Close
	changePct = (current - base) / base * 100
	return current, changePct
}
