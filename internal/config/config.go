// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// Worker modes.
const (
	WorkerModeInline = "inline"
	WorkerModeAsynq  = "asynq"
)

// Price providers.
const (
	ProviderCoinDesk  = "coindesk"
	ProviderCoinGecko = "coingecko"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Price    PriceConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
	Widget   WidgetConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int  `mapstructure:"port"`
	ServeSwagger  bool `mapstructure:"serve_swagger"`
	ServeAsynqmon bool `mapstructure:"serve_asynqmon"`
	ServeMetrics  bool `mapstructure:"serve_metrics"`
}

// PriceConfig holds settings for the upstream price endpoint.
type PriceConfig struct {
	Provider   string `mapstructure:"provider"`
	URL        string `mapstructure:"url"`
	APIKey     string `mapstructure:"api_key"`
	TimeoutSec int    `mapstructure:"timeout_sec"` // 0 leaves the HTTP client without a timeout.
	UserAgent  string `mapstructure:"user_agent"`
}

// StoreConfig selects the widget state backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Slice  string `mapstructure:"slice"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	Name               string `mapstructure:"name"`
	SSLMode            string `mapstructure:"sslmode"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSec int    `mapstructure:"conn_max_lifetime_sec"`
	DSN                string
}

// RedisConfig holds connection settings for both Redis instances.
type RedisConfig struct {
	StoreAddr string `mapstructure:"store_addr"` // Redis instance for widget state (store.driver=redis).
	AsynqAddr string `mapstructure:"asynq_addr"` // Redis instance for the Asynq task queue (worker.mode=asynq).
}

// WorkerConfig holds fetch runner settings.
type WorkerConfig struct {
	Mode             string `mapstructure:"mode"`
	Concurrency      int    `mapstructure:"concurrency"`
	TimeoutSec       int    `mapstructure:"timeout_sec"`
	CheckIntervalSec int    `mapstructure:"check_interval_sec"`
}

// WidgetConfig holds presentation settings.
type WidgetConfig struct {
	ClearLabel string `mapstructure:"clear_label"`
	RefreshSec int    `mapstructure:"refresh_sec"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./internal/config")

	v.SetEnvPrefix("BTCWIDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	return fromViper(v)
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_asynqmon", true)
	v.SetDefault("server.serve_metrics", true)
	v.SetDefault("price.provider", ProviderCoinDesk)
	v.SetDefault("price.url", "https://api.coindesk.com/v1/bpi/currentprice.json")
	v.SetDefault("price.api_key", "")
	v.SetDefault("price.timeout_sec", 10)
	v.SetDefault("price.user_agent", "btcwidget/1.0")
	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("store.slice", "btcPrice")
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "btcwidget")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("redis.store_addr", "redis_store:6381")
	v.SetDefault("redis.asynq_addr", "redis_asynq:6380")
	v.SetDefault("worker.mode", WorkerModeInline)
	v.SetDefault("worker.concurrency", 1)
	v.SetDefault("worker.timeout_sec", 30)
	v.SetDefault("worker.check_interval_sec", 1)
	v.SetDefault("widget.clear_label", "Apagar")
	v.SetDefault("widget.refresh_sec", 1)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Price.Provider = strings.ToLower(strings.TrimSpace(cfg.Price.Provider))
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Worker.Mode = strings.ToLower(strings.TrimSpace(cfg.Worker.Mode))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeSec <= 0 {
		cfg.Database.ConnMaxLifetimeSec = 300
	}

	cfg.Database.DSN = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.Name, cfg.Database.SSLMode)

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	switch c.Price.Provider {
	case ProviderCoinDesk, ProviderCoinGecko:
	default:
		errs = append(errs, fmt.Errorf("price.provider must be %q or %q, got %q", ProviderCoinDesk, ProviderCoinGecko, c.Price.Provider))
	}
	if c.Price.Provider == ProviderCoinDesk && c.Price.URL == "" {
		errs = append(errs, fmt.Errorf("price.url is required (set BTCWIDGET_PRICE_URL)"))
	}
	if c.Price.TimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("price.timeout_sec must be non-negative, got %d", c.Price.TimeoutSec))
	}

	if c.Store.Slice == "" {
		errs = append(errs, fmt.Errorf("store.slice is required"))
	}
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverRedis:
		if c.Redis.StoreAddr == "" {
			errs = append(errs, fmt.Errorf("redis.store_addr is required (set BTCWIDGET_REDIS_STORE_ADDR)"))
		}
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required"))
		}
		if c.Database.Port <= 0 {
			errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required"))
		}
		if c.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver must be one of memory, redis, postgres, got %q", c.Store.Driver))
	}

	switch c.Worker.Mode {
	case WorkerModeInline:
	case WorkerModeAsynq:
		if c.Redis.AsynqAddr == "" {
			errs = append(errs, fmt.Errorf("redis.asynq_addr is required (set BTCWIDGET_REDIS_ASYNQ_ADDR)"))
		}
		if c.Worker.Concurrency <= 0 {
			errs = append(errs, fmt.Errorf("worker.concurrency must be positive, got %d", c.Worker.Concurrency))
		}
		if c.Worker.CheckIntervalSec <= 0 {
			errs = append(errs, fmt.Errorf("worker.check_interval_sec must be positive, got %d", c.Worker.CheckIntervalSec))
		}
	default:
		errs = append(errs, fmt.Errorf("worker.mode must be %q or %q, got %q", WorkerModeInline, WorkerModeAsynq, c.Worker.Mode))
	}
	if c.Worker.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("worker.timeout_sec must be positive, got %d", c.Worker.TimeoutSec))
	}

	if strings.TrimSpace(c.Widget.ClearLabel) == "" {
		errs = append(errs, fmt.Errorf("widget.clear_label is required"))
	}
	if c.Widget.RefreshSec <= 0 {
		errs = append(errs, fmt.Errorf("widget.refresh_sec must be positive, got %d", c.Widget.RefreshSec))
	}

	return errors.Join(errs...)
}
