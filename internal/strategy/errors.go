package strategy

import (
	"fmt"
	"sort"
)

// InsufficientHistoryError reports an evaluation attempted before every
// required indicator is defined at the evaluation point. It names the
// shortest unmet requirement so the caller knows how much history to fetch.
type InsufficientHistoryError struct {
	Symbol    string
	Indicator string
	Period    int
	Need      int
	Have      int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("%s: %s(%d) not ready: need %d bars, have %d",
		e.Symbol, e.Indicator, e.Period, e.Need, e.Have)
}

// requirement is one indicator's minimum bar count for an evaluation.
type requirement struct {
	indicator string
	period    int
	need      int
}

// checkHistory verifies every requirement and, on failure, reports the unmet
// requirement with the shortest period. Never substitutes a default value.
func checkHistory(symbol string, have int, reqs []requirement) error {
	sorted := make([]requirement, len(reqs))
	copy(sorted, reqs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].period != sorted[j].period {
			return sorted[i].period < sorted[j].period
		}
		return sorted[i].need < sorted[j].need
	})
	for _, r := range sorted {
		if have < r.need {
			return &InsufficientHistoryError{
				Symbol:    symbol,
				Indicator: r.indicator,
				Period:    r.period,
				Need:      r.need,
				Have:      have,
			}
		}
	}
	return nil
}
