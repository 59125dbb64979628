// Package store holds the widget state container keyed by slice name.
package store

import (
	"context"
	"errors"

	"btcwidget/internal/widget"
)

// Store persists the state of one or more widget slices.
// A slice that was never saved loads as the zero (idle) state.
type Store interface {
	Load(ctx context.Context, slice string) (widget.State, error)
	Save(ctx context.Context, slice string, state widget.State) error
	Ping(ctx context.Context) error
}

// ErrInvalidState is returned when a backend rejects the state it was asked to save.
var ErrInvalidState = errors.New("invalid widget state")
