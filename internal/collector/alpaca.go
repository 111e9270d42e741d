package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockSentinel/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca Market Data API (v2),
// requesting the free IEX feed.
type AlpacaFetcher struct {
	BaseURL   string
	KeyID     string
	SecretKey string
	Client    *http.Client
}

// NewAlpacaFetcher creates a new fetcher with optional proxy support.
func NewAlpacaFetcher(baseURL, keyID, secretKey, proxyURL string) *AlpacaFetcher {
	if baseURL == "" {
		baseURL = "https://data.alpaca.markets"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AlpacaFetcher{
		BaseURL:   baseURL,
		KeyID:     keyID,
		SecretKey: secretKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaBar is the JSON bar shape from the Alpaca data API.
type alpacaBar struct {
	Time   time.Time `json:"t"`
	Open   float64   `json:"o"`
	High   float64   `json:"h"`
	Low    float64   `json:"l"`
	Close  float64   `json:"c"`
	Volume float64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          []alpacaBar `json:"bars"`
	NextPageToken *string     `json:"next_page_token"`
}

func (f *AlpacaFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	start := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")

	var bars []model.Bar
	pageToken := ""
	for {
		endpoint := fmt.Sprintf("%s/v2/stocks/%s/bars?timeframe=1Day&feed=iex&limit=10000&start=%s",
			f.BaseURL, url.PathEscape(symbol), start)
		if pageToken != "" {
			endpoint += "&page_token=" + url.QueryEscape(pageToken)
		}

		req, err := http.NewRequest("GET", endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("APCA-API-KEY-ID", f.KeyID)
		req.Header.Set("APCA-API-SECRET-KEY", f.SecretKey)

		resp, err := f.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("alpaca fetch: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("alpaca read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("alpaca: status %d, body: %s", resp.StatusCode, string(body))
		}

		var page alpacaBarsResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("alpaca decode: %w", err)
		}
		for _, b := range page.Bars {
			bars = append(bars, model.Bar{
				Time:   b.Time.UTC(),
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: b.Volume,
			})
		}
		if page.NextPageToken == nil || *page.NextPageToken == "" {
			break
		}
		pageToken = *page.NextPageToken
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("alpaca: no data returned for %s", symbol)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
