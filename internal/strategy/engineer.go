package strategy

import (
	"fmt"

	"StockSentinel/internal/indicator"
	"StockSentinel/internal/model"
)

// Engineer is the weekly trend-following engine. It evaluates the most
// recent bar of a weekly series against EMA, RSI and an ATR-buffered hard
// stop, and emits exactly one verdict per call. It keeps no state between
// calls; the transition check (fresh cross above EMA) reads only the
// previous bar of the supplied series.
type Engineer struct {
	cfg EngineerConfig
}

// NewEngineer creates an Engineer with the given parameters.
func NewEngineer(cfg EngineerConfig) *Engineer {
	return &Engineer{cfg: cfg}
}

// Evaluate applies the trend rules to the last bar of the series.
// Rule precedence (first match wins):
//  1. close < hard stop            -> SELL
//  2. close < EMA                  -> WARNING (soft breach, no panic-sell)
//  3. RSI > overbought             -> PROFIT_TAKE
//  4. close > EMA and (RSI <= buy gate or fresh cross above EMA) -> BUY
//  5. otherwise                    -> HOLD
func (e *Engineer) Evaluate(s model.Series) (*model.Verdict, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	bars := s.Bars
	if s.PartialLast && !e.cfg.IncludePartial {
		// Drop the forming bucket and judge the last completed week.
		bars = bars[:len(bars)-1]
	}

	// The fresh-cross check needs EMA on the previous bar as well.
	reqs := []requirement{
		{indicator: "ATR", period: e.cfg.ATRPeriod, need: e.cfg.ATRPeriod},
		{indicator: "RSI", period: e.cfg.RSIPeriod, need: e.cfg.RSIPeriod + 1},
		{indicator: "EMA", period: e.cfg.EMAPeriod, need: e.cfg.EMAPeriod + 1},
	}
	if err := checkHistory(s.Symbol, len(bars), reqs); err != nil {
		return nil, err
	}

	ema, err := indicator.EMA(bars, e.cfg.EMAPeriod)
	if err != nil {
		return nil, err
	}
	rsi, err := indicator.RSI(bars, e.cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}
	atr, err := indicator.ATR(bars, e.cfg.ATRPeriod)
	if err != nil {
		return nil, err
	}
	stop := indicator.HardStop(ema, atr, e.cfg.StopATRMult)

	last := len(bars) - 1
	snap := indicator.Snapshot{
		EMA:      ema[last],
		RSI:      rsi[last],
		ATR:      atr[last],
		HardStop: stop[last],
	}
	if !snap.EMA.Valid || !snap.RSI.Valid || !snap.ATR.Valid || !ema[last-1].Valid {
		// checkHistory guarantees this cannot happen; guard against period
		// config drift all the same.
		return nil, &InsufficientHistoryError{Symbol: s.Symbol, Indicator: "EMA", Period: e.cfg.EMAPeriod, Need: e.cfg.EMAPeriod + 1, Have: len(bars)}
	}

	v := e.classify(bars[last], bars[last-1].Close, ema[last-1].V, snap)
	v.Symbol = s.Symbol
	return v, nil
}

func (e *Engineer) classify(cur model.Bar, prevClose, prevEMA float64, snap indicator.Snapshot) *model.Verdict {
	price := cur.Close
	levels := map[string]float64{
		"close":     price,
		"ema":       snap.EMA.V,
		"rsi":       snap.RSI.V,
		"atr":       snap.ATR.V,
		"hard_stop": snap.HardStop.V,
	}
	v := &model.Verdict{Bar: cur, Levels: levels}

	switch {
	case price < snap.HardStop.V:
		v.Action = model.ActionSell
		v.Severity = model.SeverityDanger
		v.Reason = fmt.Sprintf("Breached ATR defense line (%.2f) - trend reversal", snap.HardStop.V)

	case price < snap.EMA.V:
		v.Action = model.ActionWarning
		v.Severity = model.SeverityWarning
		v.Reason = fmt.Sprintf("Closed below EMA (%.2f) but holding above ATR defense line (%.2f)", snap.EMA.V, snap.HardStop.V)

	case snap.RSI.V > e.cfg.RSIOverbought:
		v.Action = model.ActionProfitTake
		v.Severity = model.SeverityWarning
		v.Reason = fmt.Sprintf("RSI overbought (%.1f > %.0f), consider taking partial profits", snap.RSI.V, e.cfg.RSIOverbought)

	case price > snap.EMA.V && snap.RSI.V <= e.cfg.RSIBuyGate:
		v.Action = model.ActionBuy
		v.Severity = model.SeveritySuccess
		v.Reason = fmt.Sprintf("Uptrend confirmed, RSI pullback (%.1f <= %.0f)", snap.RSI.V, e.cfg.RSIBuyGate)

	case price > snap.EMA.V && prevClose <= prevEMA:
		// A genuine cross: at/below EMA last bar, above it now. Merely being
		// above on both bars does not qualify.
		v.Action = model.ActionBuy
		v.Severity = model.SeveritySuccess
		v.Reason = fmt.Sprintf("Fresh breakout above EMA (%.2f)", snap.EMA.V)
		levels["prev_close"] = prevClose
		levels["prev_ema"] = prevEMA

	default:
		v.Action = model.ActionHold
		v.Severity = model.SeverityInfo
		v.Reason = "Price within normal fluctuation range"
	}
	return v
}
