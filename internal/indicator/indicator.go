// Package indicator provides pure technical indicator calculations over bar
// series. Every function is deterministic and uses only bars at or before
// each output position, so re-running on the same input is bit-identical.
//
// Outputs are Lines aligned one-to-one with the input series. Positions
// inside the warm-up window are explicitly undefined rather than zero; a
// Value must be checked for Valid before its number means anything.
package indicator

import "fmt"

// Value is one indicator output. Valid is false while the lookback window is
// not yet satisfied; V is meaningless in that case.
type Value struct {
	V     float64
	Valid bool
}

// Line is an indicator output sequence aligned with the input bars.
type Line []Value

// At returns the value at index i and whether it is defined.
func (l Line) At(i int) (float64, bool) {
	if i < 0 || i >= len(l) {
		return 0, false
	}
	return l[i].V, l[i].Valid
}

// Last returns the value at the final position.
func (l Line) Last() (float64, bool) {
	return l.At(len(l) - 1)
}

// Snapshot bundles the indicator values backing one evaluation position.
type Snapshot struct {
	EMA      Value
	RSI      Value
	ATR      Value
	HardStop Value
}

// InsufficientDataError reports a series too short to compute an indicator.
// The caller may retry once more history is available.
type InsufficientDataError struct {
	Indicator string
	Period    int
	Need      int
	Have      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s(%d): need at least %d bars, have %d", e.Indicator, e.Period, e.Need, e.Have)
}
