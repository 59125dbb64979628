package store

import (
	"context"
	"sync"

	"btcwidget/internal/widget"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps slices in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	slices map[string]widget.State
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithPreloadedState seeds slice with state.
func WithPreloadedState(slice string, state widget.State) MemoryOption {
	return func(s *MemoryStore) {
		s.slices[slice] = state.Normalize()
	}
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{slices: make(map[string]widget.State)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the state of slice.
func (s *MemoryStore) Load(_ context.Context, slice string) (widget.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slices[slice].Normalize(), nil
}

// Save replaces the state of slice.
func (s *MemoryStore) Save(_ context.Context, slice string, state widget.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slices[slice] = state.Normalize()
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }
