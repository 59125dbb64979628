// Package provider implements the upstream price endpoints the widget fetches from.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"btcwidget/internal/config"
	"btcwidget/internal/widget"
)

// ErrFetchFailed covers HTTP error statuses, transport failures and unusable bodies alike.
var ErrFetchFailed = errors.New("fetch failed")

// PriceProvider fetches the current BTC/USD quote.
type PriceProvider interface {
	GetPrice(ctx context.Context) (widget.Quote, error)
}

var validate = validator.New()

// NewProviderFromConfig builds the provider selected by price.provider.
func NewProviderFromConfig(cfg config.PriceConfig) (PriceProvider, error) {
	switch cfg.Provider {
	case config.ProviderCoinDesk:
		return NewCoinDeskProvider(cfg.URL, cfg.UserAgent, cfg.TimeoutSec), nil
	case config.ProviderCoinGecko:
		return NewCoinGeckoProvider(cfg.URL, cfg.APIKey, cfg.UserAgent, cfg.TimeoutSec), nil
	case "":
		return nil, fmt.Errorf("price.provider is required")
	default:
		return nil, fmt.Errorf("unknown price provider: %s", cfg.Provider)
	}
}

// newHTTPClient returns a client with the given timeout; zero keeps the http.Client default (none).
func newHTTPClient(timeoutSec int) *http.Client {
	return &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}
}

func fetchFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFetchFailed, fmt.Sprintf(format, args...))
}
