package model

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func flatBars(times []time.Time, close float64) []Bar {
	bars := make([]Bar, len(times))
	for i, t := range times {
		bars[i] = Bar{Time: t, Open: close, High: close + 1, Low: close - 1, Close: close, Volume: 1000}
	}
	return bars
}

func TestValidate_OK(t *testing.T) {
	s := Series{
		Symbol:   "AAPL",
		Interval: IntervalDaily,
		Bars:     flatBars([]time.Time{day(2024, 1, 2), day(2024, 1, 3), day(2024, 1, 4)}, 100),
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	base := []time.Time{day(2024, 1, 2), day(2024, 1, 3)}
	tests := []struct {
		name   string
		mutate func(*Series)
	}{
		{"empty", func(s *Series) { s.Bars = nil }},
		{"zero price", func(s *Series) { s.Bars[1].Close = 0 }},
		{"negative price", func(s *Series) { s.Bars[0].Low = -5 }},
		{"negative volume", func(s *Series) { s.Bars[1].Volume = -1 }},
		{"duplicate timestamp", func(s *Series) { s.Bars[1].Time = s.Bars[0].Time }},
		{"reversed timestamps", func(s *Series) { s.Bars[1].Time = s.Bars[0].Time.AddDate(0, 0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Series{Symbol: "AAPL", Interval: IntervalDaily, Bars: flatBars(base, 100)}
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var ise *InvalidSeriesError
			if !errors.As(err, &ise) {
				t.Fatalf("expected InvalidSeriesError, got %T", err)
			}
		})
	}
}

func TestResampleWeekly_Aggregation(t *testing.T) {
	// Mon 2024-01-08 .. Fri 2024-01-12, one complete trading week.
	daily := Series{Symbol: "AAPL", Interval: IntervalDaily}
	closes := []float64{100, 102, 101, 104, 103}
	for i, c := range closes {
		daily.Bars = append(daily.Bars, Bar{
			Time:   day(2024, 1, 8+i),
			Open:   c - 1,
			High:   c + 2,
			Low:    c - 2,
			Close:  c,
			Volume: 1000,
		})
	}

	weekly, err := ResampleWeekly(daily)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(weekly.Bars) != 1 {
		t.Fatalf("expected 1 weekly bar, got %d", len(weekly.Bars))
	}
	w := weekly.Bars[0]
	if !w.Time.Equal(day(2024, 1, 12)) {
		t.Errorf("bucket should end on Friday 2024-01-12, got %v", w.Time)
	}
	if w.Open != 99 {
		t.Errorf("open should be first daily open 99, got %v", w.Open)
	}
	if w.High != 106 {
		t.Errorf("high should be max of highs 106, got %v", w.High)
	}
	if w.Low != 98 {
		t.Errorf("low should be min of lows 98, got %v", w.Low)
	}
	if w.Close != 103 {
		t.Errorf("close should be last daily close 103, got %v", w.Close)
	}
	if w.Volume != 5000 {
		t.Errorf("volume should be summed 5000, got %v", w.Volume)
	}
	if weekly.PartialLast {
		t.Error("week ending on its Friday must not be flagged partial")
	}
}

func TestResampleWeekly_PartialFinalBucket(t *testing.T) {
	// Full week, then Mon-Wed of the next week: last bucket is forming.
	times := []time.Time{
		day(2024, 1, 8), day(2024, 1, 9), day(2024, 1, 10), day(2024, 1, 11), day(2024, 1, 12),
		day(2024, 1, 15), day(2024, 1, 16), day(2024, 1, 17),
	}
	daily := Series{Symbol: "AAPL", Interval: IntervalDaily, Bars: flatBars(times, 100)}

	weekly, err := ResampleWeekly(daily)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(weekly.Bars) != 2 {
		t.Fatalf("expected 2 weekly bars, got %d", len(weekly.Bars))
	}
	if !weekly.PartialLast {
		t.Error("forming week must be flagged partial")
	}
	if !weekly.Bars[1].Time.Equal(day(2024, 1, 19)) {
		t.Errorf("second bucket should end Friday 2024-01-19, got %v", weekly.Bars[1].Time)
	}
	if weekly.Bars[1].Volume != 3000 {
		t.Errorf("partial bucket volume should be 3000, got %v", weekly.Bars[1].Volume)
	}
}

func TestResampleWeekly_RequiresDaily(t *testing.T) {
	s := Series{Symbol: "AAPL", Interval: IntervalWeekly, Bars: flatBars([]time.Time{day(2024, 1, 12)}, 100)}
	if _, err := ResampleWeekly(s); err == nil {
		t.Fatal("expected error resampling a non-daily series")
	}
}
