package indicator

import (
	"math"

	"StockSentinel/internal/model"
)

// ATR computes the average true range: the Wilder-smoothed moving average of
// true range, seeded as a simple mean over the first `period` true ranges.
// The first bar's true range is high-low since there is no previous close.
// Positions 0..period-2 are undefined.
func ATR(bars []model.Bar, period int) (Line, error) {
	if period <= 0 {
		return nil, &InsufficientDataError{Indicator: "ATR", Period: period, Need: 1, Have: len(bars)}
	}
	if len(bars) < period {
		return nil, &InsufficientDataError{Indicator: "ATR", Period: period, Need: period, Have: len(bars)}
	}

	line := make(Line, len(bars))
	p := float64(period)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trueRange(bars, i)
	}
	line[period-1] = Value{V: sum / p, Valid: true}

	for i := period; i < len(bars); i++ {
		prev := line[i-1].V
		line[i] = Value{V: (prev*(p-1) + trueRange(bars, i)) / p, Valid: true}
	}
	return line, nil
}

func trueRange(bars []model.Bar, i int) float64 {
	hl := bars[i].High - bars[i].Low
	if i == 0 {
		return hl
	}
	prevClose := bars[i-1].Close
	hc := math.Abs(bars[i].High - prevClose)
	lc := math.Abs(bars[i].Low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}
