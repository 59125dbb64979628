package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"btcwidget/internal/widget"
)

var _ PriceProvider = (*CoinDeskProvider)(nil)

// DefaultCoinDeskURL is the public CoinDesk current price endpoint.
const DefaultCoinDeskURL = "https://api.coindesk.com/v1/bpi/currentprice.json"

// CoinDeskProvider fetches the BTC price from a CoinDesk-shaped endpoint.
type CoinDeskProvider struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewCoinDeskProvider creates a new CoinDeskProvider.
func NewCoinDeskProvider(url, userAgent string, timeoutSec int) *CoinDeskProvider {
	if url == "" {
		url = DefaultCoinDeskURL
	}
	return &CoinDeskProvider{
		url:       url,
		userAgent: userAgent,
		client:    newHTTPClient(timeoutSec),
	}
}

// rateValue accepts a JSON number or a numeric string with thousands separators.
type rateValue float64

func (r *rateValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid rate %s: %w", string(b), err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("invalid rate %s: not a finite number", string(b))
	}
	*r = rateValue(f)
	return nil
}

type coinDeskResponse struct {
	BPI struct {
		USD struct {
			Rate *rateValue `json:"rate" validate:"required,gte=0"`
		} `json:"USD"`
	} `json:"bpi"`
	Time struct {
		Updated *string `json:"updated" validate:"required"` // may be empty, must be present
	} `json:"time"`
}

// GetPrice issues one GET and extracts bpi.USD.rate and time.updated.
func (p *CoinDeskProvider) GetPrice(ctx context.Context) (widget.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return widget.Quote{}, fetchFailed("coindesk request creation failed: %v", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return widget.Quote{}, fetchFailed("coindesk request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return widget.Quote{}, fetchFailed("coindesk returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result coinDeskResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return widget.Quote{}, fetchFailed("failed to decode coindesk response: %v", err)
	}
	if err = validate.Struct(result); err != nil {
		return widget.Quote{}, fetchFailed("invalid coindesk response: %v", err)
	}

	return widget.Quote{
		RateUSD:   float64(*result.BPI.USD.Rate),
		UpdatedAt: *result.Time.Updated,
	}, nil
}
