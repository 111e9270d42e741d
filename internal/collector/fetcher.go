package collector

import "StockSentinel/internal/model"

// Fetcher defines the interface for fetching raw daily bars. Weekly bars are
// always derived locally by resampling so the bucketing contract is uniform
// across providers.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.Bar, error)
	Name() string
}
