package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"CryptoSentry/internal/model"
)

// BinanceFetcher implements Fetcher using the Binance public REST API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string, timeout time.Duration) *BinanceFetcher {
	if baseURL == "" {
		baseURL = "https://api.binance.com/api/v3"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

var binanceIntervals = map[string]string{
	"1m": "1m", "5m": "5m", "15m": "15m", "30m": "30m",
	"1h": "1h", "2h": "2h", "4h": "4h", "6h": "6h", "8h": "8h", "12h": "12h",
	"1d": "1d", "3d": "3d", "1w": "1w",
}

func (f *BinanceFetcher) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("binance: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("binance decode: %w", err)
	}
	return nil
}

// FetchSeries fetches klines: each element is an array of
// [openTime, open, high, low, close, volume, ...] with prices as strings.
func (f *BinanceFetcher) FetchSeries(ctx context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error) {
	interval, ok := binanceIntervals[timeframe]
	if !ok {
		interval = "1h"
	}
	endpoint := fmt.Sprintf("%s/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), interval, limit)

	var raw [][]any
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("binance: no klines returned for %s", symbol)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			return nil, fmt.Errorf("binance: malformed kline for %s", symbol)
		}
		ts, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("binance: malformed kline timestamp for %s", symbol)
		}
		bar := model.OHLCV{Time: time.UnixMilli(int64(ts))}
		fields := []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume}
		for i, dst := range fields {
			s, ok := k[i+1].(string)
			if !ok {
				return nil, fmt.Errorf("binance: malformed kline field for %s", symbol)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("binance: parse kline field: %w", err)
			}
			*dst = v
		}
		if err := bar.Validate(); err != nil {
			return nil, fmt.Errorf("binance: invalid bar for %s: %w", symbol, err)
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// binanceTicker is the 24hr ticker shape; only the fields we read.
type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
}

func (f *BinanceFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/ticker/24hr?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var t binanceTicker
	if err := f.get(ctx, endpoint, &t); err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(t.LastPrice, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("binance: malformed last price %q for %s", t.LastPrice, symbol)
	}
	return price, nil
}

// FetchScreener lists the top USDT pairs by quote volume.
func (f *BinanceFetcher) FetchScreener(ctx context.Context, limit int) ([]ScreenerEntry, error) {
	endpoint := f.BaseURL + "/ticker/24hr"
	var tickers []binanceTicker
	if err := f.get(ctx, endpoint, &tickers); err != nil {
		return nil, err
	}

	parse := func(s string) float64 {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}

	entries := make([]ScreenerEntry, 0, limit)
	for _, t := range tickers {
		if len(t.Symbol) < 5 || t.Symbol[len(t.Symbol)-4:] != "USDT" {
			continue
		}
		if parse(t.Volume) <= 1_000_000 {
			continue
		}
		entries = append(entries, ScreenerEntry{
			Symbol:    t.Symbol,
			Price:     parse(t.LastPrice),
			Change24h: parse(t.PriceChangePercent),
			Volume24h: parse(t.QuoteVolume),
			High24h:   parse(t.HighPrice),
			Low24h:    parse(t.LowPrice),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Volume24h > entries[j].Volume24h })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
