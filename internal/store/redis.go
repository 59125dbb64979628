package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"btcwidget/internal/widget"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps each slice in a Redis hash so several instances share one widget.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sliceKey(slice string) string {
	return "widget:{" + slice + "}"
}

// Load reads the hash of slice; a missing hash is the idle state.
func (s *RedisStore) Load(ctx context.Context, slice string) (widget.State, error) {
	vals, err := s.client.HGetAll(ctx, sliceKey(slice)).Result()
	if err != nil {
		return widget.State{}, fmt.Errorf("redis load %s: %w", slice, err)
	}
	if len(vals) == 0 {
		return widget.State{Status: widget.StatusIdle}, nil
	}

	state := widget.State{
		Status: widget.Status(vals["status"]),
		Quote:  widget.Quote{UpdatedAt: vals["updated_at"]},
	}
	if raw := vals["rate"]; raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return widget.State{}, fmt.Errorf("redis load %s: invalid rate %q: %w", slice, raw, err)
		}
		state.Quote.RateUSD = rate
	}
	return state.Normalize(), nil
}

// Save overwrites the hash of slice.
func (s *RedisStore) Save(ctx context.Context, slice string, state widget.State) error {
	state = state.Normalize()
	err := s.client.HSet(ctx, sliceKey(slice),
		"status", string(state.Status),
		"rate", strconv.FormatFloat(state.Quote.RateUSD, 'f', -1, 64),
		"updated_at", state.Quote.UpdatedAt,
	).Err()
	if err != nil {
		return fmt.Errorf("redis save %s: %w", slice, err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
