package indicator

import "StockSentinel/internal/model"

// RSI computes the relative strength index with Wilder smoothing. Average
// gain/loss are seeded as simple means over the first `period` bar-to-bar
// changes, then smoothed as avg = (avg*(period-1) + value) / period.
// Because changes start at index 1, positions 0..period-1 are undefined.
// A window with zero average loss yields RSI 100, not a division fault.
func RSI(bars []model.Bar, period int) (Line, error) {
	if period <= 0 {
		return nil, &InsufficientDataError{Indicator: "RSI", Period: period, Need: 2, Have: len(bars)}
	}
	if len(bars) < period+1 {
		return nil, &InsufficientDataError{Indicator: "RSI", Period: period, Need: period + 1, Have: len(bars)}
	}

	line := make(Line, len(bars))
	p := float64(period)

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= p
	avgLoss /= p
	line[period] = Value{V: rsiFrom(avgGain, avgLoss), Valid: true}

	for i := period + 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		line[i] = Value{V: rsiFrom(avgGain, avgLoss), Valid: true}
	}
	return line, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
