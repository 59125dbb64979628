// Package testkit provisions a migrated widget store on Postgres and Redis for integration tests.
// Containers are started with testcontainers unless BTCWIDGET_TEST_PG_DSN or
// BTCWIDGET_TEST_REDIS_ADDR point at running instances.
package testkit

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the environment overrides of the test infrastructure.
type Config struct {
	PGImage        string
	RedisImage     string
	PGDSN          string
	RedisAddr      string
	StartupTimeout time.Duration
	KeepContainers bool
}

// LoadConfig reads BTCWIDGET_TEST_* variables.
func LoadConfig() Config {
	return Config{
		PGImage:        env("BTCWIDGET_TEST_PG_IMAGE", "postgres:18.1-alpine"),
		RedisImage:     env("BTCWIDGET_TEST_REDIS_IMAGE", "redis:8.4.0-alpine"),
		PGDSN:          os.Getenv("BTCWIDGET_TEST_PG_DSN"),
		RedisAddr:      os.Getenv("BTCWIDGET_TEST_REDIS_ADDR"),
		StartupTimeout: envDuration("BTCWIDGET_TEST_STARTUP_TIMEOUT", 90*time.Second),
		KeepContainers: envBool("BTCWIDGET_KEEP_CONTAINERS"),
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration accepts a Go duration or plain seconds.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	fmt.Fprintf(os.Stderr, "testkit: ignoring %s=%q, using %v\n", key, v, def)
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
