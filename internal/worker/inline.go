package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"btcwidget/internal/service"
)

var _ service.Enqueuer = (*InlineEnqueuer)(nil)

var (
	// errNotBound is returned when a fetch is scheduled before Bind.
	errNotBound = errors.New("inline enqueuer has no processor")
	// errClosed is returned when a fetch is scheduled after Close.
	errClosed = errors.New("inline enqueuer is closed")
)

// InlineEnqueuer runs each fetch on its own goroutine in this process.
type InlineEnqueuer struct {
	timeout time.Duration
	log     *zap.SugaredLogger

	// guards processor and closed; wg.Add only happens under a read lock
	mu        sync.RWMutex
	processor FetchProcessor
	closed    bool
	wg        sync.WaitGroup
}

// NewInlineEnqueuer creates a new InlineEnqueuer; each fetch is bounded by timeout.
func NewInlineEnqueuer(timeout time.Duration, logger *zap.SugaredLogger) *InlineEnqueuer {
	return &InlineEnqueuer{timeout: timeout, log: logger}
}

// Bind sets the processor that runs scheduled fetches.
func (e *InlineEnqueuer) Bind(p FetchProcessor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.processor = p
}

// EnqueueFetch starts the fetch and returns immediately.
// The fetch does not inherit ctx, which usually belongs to the HTTP request.
func (e *InlineEnqueuer) EnqueueFetch(_ context.Context, payload service.FetchPricePayload) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return errClosed
	}
	p := e.processor
	if p == nil {
		return errNotBound
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		if err := p.ProcessFetch(ctx, payload.FetchID); err != nil {
			e.log.Warnw("Inline fetch failed", "fetch_id", payload.FetchID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until every started fetch has finished.
// Callers must not schedule fetches concurrently; use Close at shutdown.
func (e *InlineEnqueuer) Wait() {
	e.wg.Wait()
}

// Close rejects further fetches and waits for the started ones.
func (e *InlineEnqueuer) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.wg.Wait()
}
