package indicator

import "StockSentinel/internal/model"

// EMA computes the exponential moving average of closes with smoothing
// factor 2/(period+1). The first value is an SMA seed over the first
// `period` closes, so positions 0..period-2 are undefined.
func EMA(bars []model.Bar, period int) (Line, error) {
	if period <= 0 {
		return nil, &InsufficientDataError{Indicator: "EMA", Period: period, Need: 1, Have: len(bars)}
	}
	if len(bars) < period {
		return nil, &InsufficientDataError{Indicator: "EMA", Period: period, Need: period, Have: len(bars)}
	}

	line := make(Line, len(bars))
	alpha := 2.0 / float64(period+1)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += bars[i].Close
	}
	line[period-1] = Value{V: sum / float64(period), Valid: true}

	for i := period; i < len(bars); i++ {
		prev := line[i-1].V
		line[i] = Value{V: bars[i].Close*alpha + prev*(1-alpha), Valid: true}
	}
	return line, nil
}
