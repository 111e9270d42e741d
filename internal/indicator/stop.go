package indicator

// HardStop derives the volatility-buffered stop line EMA - mult*ATR. A
// position is defined only where both inputs are defined.
func HardStop(ema, atr Line, mult float64) Line {
	n := len(ema)
	if len(atr) < n {
		n = len(atr)
	}
	line := make(Line, n)
	for i := 0; i < n; i++ {
		if ema[i].Valid && atr[i].Valid {
			line[i] = Value{V: ema[i].V - mult*atr[i].V, Valid: true}
		}
	}
	return line
}
