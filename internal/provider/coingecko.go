package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"CryptoSentry/internal/model"
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko public API.
// It is the secondary provider: coarser data, but a separate call budget.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client
	CoinIDs map[string]string // maps exchange symbols to CoinGecko coin ids
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, proxyURL string, timeout time.Duration) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		CoinIDs: map[string]string{
			"BTCUSDT":   "bitcoin",
			"ETHUSDT":   "ethereum",
			"BNBUSDT":   "binancecoin",
			"ADAUSDT":   "cardano",
			"XRPUSDT":   "ripple",
			"SOLUSDT":   "solana",
			"DOTUSDT":   "polkadot",
			"DOGEUSDT":  "dogecoin",
			"AVAXUSDT":  "avalanche-2",
			"MATICUSDT": "matic-network",
			"LINKUSDT":  "chainlink",
			"LTCUSDT":   "litecoin",
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) coinID(symbol string) (string, error) {
	id, ok := f.CoinIDs[symbol]
	if !ok {
		return "", fmt.Errorf("coingecko: no coin mapping for %s", symbol)
	}
	return id, nil
}

func (f *CoinGeckoFetcher) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("coingecko: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("coingecko decode: %w", err)
	}
	return nil
}

// FetchSeries fetches OHLC candles: each element is [timestamp_ms, o, h, l, c].
// CoinGecko publishes no per-candle volume; bars carry zero volume, which the
// volume indicators treat as missing-but-valid data.
func (f *CoinGeckoFetcher) FetchSeries(ctx context.Context, symbol, timeframe string, limit int) ([]model.OHLCV, error) {
	id, err := f.coinID(symbol)
	if err != nil {
		return nil, err
	}
	// Candle granularity is tied to the requested day span; 30 days gives
	// 4h candles, 7 days gives hourly-ish. Pick the span closest to the
	// requested timeframe.
	days := "30"
	switch timeframe {
	case "1m", "5m", "15m", "30m", "1h", "2h":
		days = "7"
	case "1d", "3d", "1w":
		days = "180"
	}
	endpoint := fmt.Sprintf("%s/coins/%s/ohlc?vs_currency=usd&days=%s", f.BaseURL, id, days)

	var raw [][]float64
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("coingecko: no candles returned for %s", symbol)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, c := range raw {
		if len(c) < 5 {
			return nil, fmt.Errorf("coingecko: malformed candle for %s", symbol)
		}
		bar := model.OHLCV{
			Time:  time.UnixMilli(int64(c[0])),
			Open:  c[1],
			High:  c[2],
			Low:   c[3],
			Close: c[4],
		}
		if err := bar.Validate(); err != nil {
			return nil, fmt.Errorf("coingecko: invalid bar for %s: %w", symbol, err)
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func (f *CoinGeckoFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	id, err := f.coinID(symbol)
	if err != nil {
		return 0, err
	}
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", f.BaseURL, url.QueryEscape(id))

	var result map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := f.get(ctx, endpoint, &result); err != nil {
		return 0, err
	}
	coin, ok := result[id]
	if !ok || coin.USD <= 0 {
		return 0, fmt.Errorf("coingecko: no price for %s", symbol)
	}
	return coin.USD, nil
}
