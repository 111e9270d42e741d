package model

import (
	"fmt"
	"math"
	"time"
)

// Interval is the sampling resolution of a series.
type Interval string

const (
	IntervalDaily  Interval = "daily"
	IntervalWeekly Interval = "weekly"
)

// Bar represents a single candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds an ordered bar sequence for one instrument at one resolution.
// PartialLast marks a final weekly bucket whose week has not yet completed;
// it is always carried so a forming week is never mistaken for a closed one.
type Series struct {
	Symbol      string
	Interval    Interval
	Bars        []Bar
	PartialLast bool
}

// InvalidSeriesError reports a malformed or logically inconsistent series.
// It is always fatal to the evaluation that received the series.
type InvalidSeriesError struct {
	Symbol string
	Index  int
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	return fmt.Sprintf("invalid series %s: bar %d: %s", e.Symbol, e.Index, e.Reason)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Validate checks ordering and numeric sanity of the series. It must pass
// before any indicator or strategy computation is attempted.
func (s Series) Validate() error {
	if len(s.Bars) == 0 {
		return &InvalidSeriesError{Symbol: s.Symbol, Index: -1, Reason: "empty series"}
	}
	for i, b := range s.Bars {
		if !positiveFinite(b.Open) || !positiveFinite(b.High) || !positiveFinite(b.Low) || !positiveFinite(b.Close) {
			return &InvalidSeriesError{Symbol: s.Symbol, Index: i, Reason: "price must be positive and finite"}
		}
		if b.Volume < 0 || math.IsInf(b.Volume, 0) || math.IsNaN(b.Volume) {
			return &InvalidSeriesError{Symbol: s.Symbol, Index: i, Reason: "volume must be non-negative and finite"}
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return &InvalidSeriesError{Symbol: s.Symbol, Index: i, Reason: "timestamps must be strictly increasing"}
		}
	}
	return nil
}

// weekEnd returns the date (UTC midnight) of the Friday on or after t.
func weekEnd(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// ResampleWeekly groups a daily series into Friday-ending week buckets:
// open = first open, high = max high, low = min low, close = last close,
// volume = sum of volumes. The final bucket is flagged partial when the last
// daily bar does not land on its bucket's Friday, i.e. the week may still be
// forming.
func ResampleWeekly(daily Series) (Series, error) {
	if daily.Interval != IntervalDaily {
		return Series{}, fmt.Errorf("resample %s: expected daily series, got %s", daily.Symbol, daily.Interval)
	}
	if err := daily.Validate(); err != nil {
		return Series{}, err
	}

	weekly := Series{Symbol: daily.Symbol, Interval: IntervalWeekly}
	var bucket Bar
	var bucketEnd time.Time
	open := false

	for _, b := range daily.Bars {
		end := weekEnd(b.Time)
		if !open || !end.Equal(bucketEnd) {
			if open {
				weekly.Bars = append(weekly.Bars, bucket)
			}
			bucket = b
			bucket.Time = end
			bucketEnd = end
			open = true
			continue
		}
		if b.High > bucket.High {
			bucket.High = b.High
		}
		if b.Low < bucket.Low {
			bucket.Low = b.Low
		}
		bucket.Close = b.Close
		bucket.Volume += b.Volume
	}
	weekly.Bars = append(weekly.Bars, bucket)

	last := daily.Bars[len(daily.Bars)-1].Time
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	weekly.PartialLast = weekEnd(last).After(lastDay)
	return weekly, nil
}
