package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcwidget/internal/config"
)

func TestCoinGeckoProvider_GetPrice(t *testing.T) {
	fixed := time.Date(2026, 5, 30, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			assert.Equal(t, "secret", r.Header.Get("x-cg-pro-api-key"))
			_, _ = w.Write([]byte(`{"bitcoin":{"usd":30000.5}}`))
		}))
		defer srv.Close()

		p := NewCoinGeckoProvider(srv.URL+"/", "secret", "", 5)
		p.now = func() time.Time { return fixed }

		q, err := p.GetPrice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 30000.5, q.RateUSD)
		assert.Equal(t, "May 30, 2026 12:00:00 UTC", q.UpdatedAt)
	})

	t.Run("rate limited", func(t *testing.T) {
		srv := newUpstream(t, http.StatusTooManyRequests, "slow down")
		_, err := NewCoinGeckoProvider(srv.URL, "", "", 5).GetPrice(context.Background())
		assert.ErrorIs(t, err, ErrFetchFailed)
	})

	t.Run("missing price", func(t *testing.T) {
		srv := newUpstream(t, http.StatusOK, `{"ethereum":{"usd":1}}`)
		_, err := NewCoinGeckoProvider(srv.URL, "", "", 5).GetPrice(context.Background())
		assert.ErrorIs(t, err, ErrFetchFailed)
	})
}

func TestNewProviderFromConfig(t *testing.T) {
	p, err := NewProviderFromConfig(config.PriceConfig{Provider: config.ProviderCoinDesk, URL: "http://example.test"})
	require.NoError(t, err)
	assert.IsType(t, &CoinDeskProvider{}, p)

	p, err = NewProviderFromConfig(config.PriceConfig{Provider: config.ProviderCoinGecko, URL: DefaultCoinDeskURL})
	require.NoError(t, err)
	require.IsType(t, &CoinGeckoProvider{}, p)
	assert.Equal(t, DefaultCoinGeckoURL, p.(*CoinGeckoProvider).baseURL)

	_, err = NewProviderFromConfig(config.PriceConfig{})
	assert.Error(t, err)

	_, err = NewProviderFromConfig(config.PriceConfig{Provider: "kraken"})
	assert.Error(t, err)
}
