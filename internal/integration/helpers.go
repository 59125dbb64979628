//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"btcwidget/internal/provider"
	"btcwidget/internal/testkit"
	"btcwidget/internal/widget"
)

const testSlice = "btcPrice"

// resetTestData clears every widget slice and queued task.
func resetTestData(t *testing.T) {
	t.Helper()
	testkit.Global().Reset(t)
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// fakeProvider implements provider.PriceProvider with a fixed result.
type fakeProvider struct {
	mu    sync.Mutex
	quote widget.Quote
	err   error
	calls int
}

var _ provider.PriceProvider = (*fakeProvider)(nil)

func (f *fakeProvider) GetPrice(_ context.Context) (widget.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.quote, f.err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
