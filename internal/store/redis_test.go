package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcwidget/internal/widget"
)

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close() //nolint:errcheck // test cleanup
	s := NewRedisStore(rdb)
	ctx := context.Background()

	t.Run("missing slice loads idle", func(t *testing.T) {
		mr.FlushAll()
		state, err := s.Load(ctx, "btcPrice")
		require.NoError(t, err)
		assert.Equal(t, widget.State{Status: widget.StatusIdle}, state)
	})

	t.Run("round trip", func(t *testing.T) {
		mr.FlushAll()
		want := widget.State{Status: widget.StatusSuccess, Quote: widget.Quote{RateUSD: 30000.25, UpdatedAt: "May 30"}}
		require.NoError(t, s.Save(ctx, "btcPrice", want))

		assert.Equal(t, "success", mr.HGet("widget:{btcPrice}", "status"))
		assert.Equal(t, "30000.25", mr.HGet("widget:{btcPrice}", "rate"))

		got, err := s.Load(ctx, "btcPrice")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("clear overwrites quote fields", func(t *testing.T) {
		mr.FlushAll()
		require.NoError(t, s.Save(ctx, "btcPrice", widget.State{Status: widget.StatusSuccess, Quote: widget.Quote{RateUSD: 1, UpdatedAt: "x"}}))
		require.NoError(t, s.Save(ctx, "btcPrice", widget.State{Status: widget.StatusIdle}))

		got, err := s.Load(ctx, "btcPrice")
		require.NoError(t, err)
		assert.Equal(t, widget.State{Status: widget.StatusIdle}, got)
	})

	t.Run("no expiry is set", func(t *testing.T) {
		mr.FlushAll()
		require.NoError(t, s.Save(ctx, "btcPrice", widget.State{Status: widget.StatusError}))
		assert.Zero(t, mr.TTL("widget:{btcPrice}"))
	})

	t.Run("corrupt rate", func(t *testing.T) {
		mr.FlushAll()
		mr.HSet("widget:{btcPrice}", "status", "success", "rate", "NaN?")
		_, err := s.Load(ctx, "btcPrice")
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
