package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProviderCoinDesk, cfg.Price.Provider)
	assert.Equal(t, "https://api.coindesk.com/v1/bpi/currentprice.json", cfg.Price.URL)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "btcPrice", cfg.Store.Slice)
	assert.Equal(t, WorkerModeInline, cfg.Worker.Mode)
	assert.Equal(t, "Apagar", cfg.Widget.ClearLabel)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/btcwidget?sslmode=disable", cfg.Database.DSN)
}

func TestFromViper_NormalizesEnums(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("store.driver", " Redis ")
	v.Set("worker.mode", "ASYNQ")
	v.Set("price.provider", "CoinGecko")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, WorkerModeAsynq, cfg.Worker.Mode)
	assert.Equal(t, ProviderCoinGecko, cfg.Price.Provider)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		v := viper.New()
		SetDefaults(v)
		cfg, err := fromViper(v)
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unknown provider", func(c *Config) { c.Price.Provider = "binance" }, "price.provider"},
		{"missing url", func(c *Config) { c.Price.URL = "" }, "price.url"},
		{"negative timeout", func(c *Config) { c.Price.TimeoutSec = -1 }, "price.timeout_sec"},
		{"unknown store", func(c *Config) { c.Store.Driver = "sqlite" }, "store.driver"},
		{"empty slice", func(c *Config) { c.Store.Slice = "" }, "store.slice"},
		{"redis store without addr", func(c *Config) {
			c.Store.Driver = StoreDriverRedis
			c.Redis.StoreAddr = ""
		}, "redis.store_addr"},
		{"postgres store without host", func(c *Config) {
			c.Store.Driver = StoreDriverPostgres
			c.Database.Host = ""
		}, "database.host"},
		{"asynq without addr", func(c *Config) {
			c.Worker.Mode = WorkerModeAsynq
			c.Redis.AsynqAddr = ""
		}, "redis.asynq_addr"},
		{"unknown worker mode", func(c *Config) { c.Worker.Mode = "kafka" }, "worker.mode"},
		{"blank clear label", func(c *Config) { c.Widget.ClearLabel = "  " }, "widget.clear_label"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("coingecko does not need url", func(t *testing.T) {
		cfg := valid()
		cfg.Price.Provider = ProviderCoinGecko
		cfg.Price.URL = ""
		assert.NoError(t, cfg.Validate())
	})
}
