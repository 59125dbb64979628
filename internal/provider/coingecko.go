package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"btcwidget/internal/widget"
)

var _ PriceProvider = (*CoinGeckoProvider)(nil)

// DefaultCoinGeckoURL is the public CoinGecko API root.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// updatedLayout matches the label format CoinDesk uses for time.updated.
const updatedLayout = "Jan 2, 2006 15:04:05 UTC"

// CoinGeckoProvider fetches the BTC price from the CoinGecko simple price API.
// CoinGecko returns no timestamp, so the label is the fetch time.
type CoinGeckoProvider struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
	now       func() time.Time
}

// NewCoinGeckoProvider creates a new CoinGeckoProvider.
func NewCoinGeckoProvider(baseURL, apiKey, userAgent string, timeoutSec int) *CoinGeckoProvider {
	if baseURL == "" || baseURL == DefaultCoinDeskURL {
		baseURL = DefaultCoinGeckoURL
	}
	return &CoinGeckoProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    strings.TrimSpace(apiKey),
		userAgent: userAgent,
		client:    newHTTPClient(timeoutSec),
		now:       time.Now,
	}
}

type coinGeckoResponse map[string]map[string]float64

// GetPrice fetches the bitcoin/usd simple price.
func (p *CoinGeckoProvider) GetPrice(ctx context.Context) (widget.Quote, error) {
	q := url.Values{}
	q.Set("ids", "bitcoin")
	q.Set("vs_currencies", "usd")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/simple/price?"+q.Encode(), http.NoBody)
	if err != nil {
		return widget.Quote{}, fetchFailed("coingecko request creation failed: %v", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	if p.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return widget.Quote{}, fetchFailed("coingecko request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return widget.Quote{}, fetchFailed("coingecko returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result coinGeckoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return widget.Quote{}, fetchFailed("failed to decode coingecko response: %v", err)
	}
	rate, ok := result["bitcoin"]["usd"]
	if !ok {
		return widget.Quote{}, fetchFailed("coingecko response has no bitcoin/usd price")
	}

	return widget.Quote{
		RateUSD:   rate,
		UpdatedAt: p.now().UTC().Format(updatedLayout),
	}, nil
}
