package collector

import (
	"fmt"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(100, days), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().UTC().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches and validates series for the strategy engines.
type Collector struct {
	Fetcher      Fetcher
	LookbackDays int
}

// NewCollector creates a Collector fetching up to lookbackDays of history.
func NewCollector(fetcher Fetcher, lookbackDays int) *Collector {
	return &Collector{Fetcher: fetcher, LookbackDays: lookbackDays}
}

// Daily fetches the daily series for a symbol and validates it before it
// reaches any engine.
func (c *Collector) Daily(symbol string) (model.Series, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, c.LookbackDays)
	if err != nil {
		return model.Series{}, fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	s := model.Series{Symbol: symbol, Interval: model.IntervalDaily, Bars: bars}
	if err := s.Validate(); err != nil {
		return model.Series{}, err
	}
	return s, nil
}

// Weekly fetches the daily series and resamples it into Friday-ending weekly
// buckets, carrying the partial-bucket flag for the forming week.
func (c *Collector) Weekly(symbol string) (model.Series, error) {
	daily, err := c.Daily(symbol)
	if err != nil {
		return model.Series{}, err
	}
	return model.ResampleWeekly(daily)
}
