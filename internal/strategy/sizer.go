package strategy

import (
	"fmt"
	"math"
)

// Position is a sizing recommendation for one entry.
type Position struct {
	Shares           int
	Value            float64
	RiskAmount       float64
	RiskPctOfAccount float64
	RegimeModifier   float64
	Note             string
}

// regimeModifier scales risk with the macro environment: full size when
// conditions align, a tiny test otherwise.
func regimeModifier(regime Regime) float64 {
	switch regime {
	case RegimeRiskOn:
		return 1.0
	case RegimeRiskOff:
		return 0.25
	default:
		return 0.5
	}
}

// SizePosition computes a risk-based share count from the entry price and
// hard stop. The share count is capped so a single position never exceeds
// the configured share of the account.
func SizePosition(cfg SizerConfig, price, hardStop float64, regime Regime) Position {
	modifier := regimeModifier(regime)
	effectiveRisk := cfg.BaseRiskPct * modifier
	riskAmount := cfg.AccountSize * effectiveRisk

	riskPerShare := price - hardStop
	if riskPerShare <= 0 {
		// Stop at or above price means the stop math is stale; fall back to
		// a 5% risk distance rather than dividing by a non-positive number.
		riskPerShare = price * 0.05
	}

	shares := riskAmount / riskPerShare
	maxShares := cfg.AccountSize * cfg.MaxAllocationPct / price
	final := math.Floor(math.Min(shares, maxShares))
	if final < 0 {
		final = 0
	}

	actualRisk := final * riskPerShare
	return Position{
		Shares:           int(final),
		Value:            final * price,
		RiskAmount:       actualRisk,
		RiskPctOfAccount: actualRisk / cfg.AccountSize * 100,
		RegimeModifier:   modifier,
		Note:             fmt.Sprintf("Risking %.2f%% of capital (%s mode)", effectiveRisk*100, regime),
	}
}
