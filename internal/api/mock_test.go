package api

import (
	"context"

	"btcwidget/internal/widget"
)

// mockWidgetService implements service.WidgetServiceInterface for testing.
type mockWidgetService struct {
	fetchPriceFunc func(ctx context.Context) (string, widget.State, error)
	clearFunc      func(ctx context.Context) (widget.State, error)
	stateFunc      func(ctx context.Context) (widget.State, error)
}

func (m *mockWidgetService) FetchPrice(ctx context.Context) (string, widget.State, error) {
	return m.fetchPriceFunc(ctx)
}

func (m *mockWidgetService) Clear(ctx context.Context) (widget.State, error) {
	return m.clearFunc(ctx)
}

func (m *mockWidgetService) State(ctx context.Context) (widget.State, error) {
	return m.stateFunc(ctx)
}

func (m *mockWidgetService) ProcessFetch(_ context.Context, _ string) error {
	return nil // Not used in handler tests
}
