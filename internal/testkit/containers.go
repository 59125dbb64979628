package testkit

import (
	"context"
	"fmt"
	"net/url"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres returns the DSN of a fresh btcwidget database, and its container when one was started.
func startPostgres(ctx context.Context, cfg Config) (string, testcontainers.Container, error) {
	if cfg.PGDSN != "" {
		return cfg.PGDSN, nil, nil
	}

	ctr, err := postgres.Run(ctx,
		cfg.PGImage,
		postgres.WithDatabase("btcwidget"),
		postgres.WithUsername("btcwidget"),
		postgres.WithPassword("btcwidget"),
		testcontainers.WithWaitStrategyAndDeadline(cfg.StartupTimeout,
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = ctr.Terminate(ctx)
		return "", nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return dsn, ctr, nil
}

// startRedis returns the host:port of a Redis instance, and its container when one was started.
func startRedis(ctx context.Context, cfg Config) (string, testcontainers.Container, error) {
	if cfg.RedisAddr != "" {
		return cfg.RedisAddr, nil, nil
	}

	ctr, err := tcredis.Run(ctx, cfg.RedisImage)
	if err != nil {
		return "", nil, fmt.Errorf("start redis container: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return "", nil, fmt.Errorf("redis connection string: %w", err)
	}
	// go-redis and asynq take host:port, not redis:// URLs
	u, err := url.Parse(connStr)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return "", nil, fmt.Errorf("parse redis connection string %q: %w", connStr, err)
	}
	return u.Host, ctr, nil
}
