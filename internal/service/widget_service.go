// Package service implements the price widget behaviour on top of the store and provider.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"btcwidget/internal/metrics"
	"btcwidget/internal/provider"
	"btcwidget/internal/store"
	"btcwidget/internal/widget"
)

// TaskTypeFetchPrice is the Asynq task type for price fetch jobs.
const TaskTypeFetchPrice = "price:fetch"

// FetchPricePayload is the payload of a scheduled price fetch.
type FetchPricePayload struct {
	FetchID string `json:"fetch_id"`
}

// Enqueuer schedules one asynchronous price fetch.
type Enqueuer interface {
	EnqueueFetch(ctx context.Context, payload FetchPricePayload) error
}

// WidgetServiceInterface defines the operations available on the widget.
type WidgetServiceInterface interface {
	FetchPrice(ctx context.Context) (fetchID string, state widget.State, err error)
	Clear(ctx context.Context) (widget.State, error)
	State(ctx context.Context) (widget.State, error)
	ProcessFetch(ctx context.Context, fetchID string) error
}

var _ WidgetServiceInterface = (*WidgetService)(nil)

// WidgetService runs the widget state machine against a store slice.
type WidgetService struct {
	store    store.Store
	provider provider.PriceProvider
	enqueuer Enqueuer
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
	slice    string

	// serializes load-reduce-save within this process
	mu sync.Mutex
}

// NewWidgetService creates a new WidgetService.
func NewWidgetService(st store.Store, prov provider.PriceProvider, enqueuer Enqueuer, m *metrics.Metrics, logger *zap.SugaredLogger, slice string) *WidgetService {
	return &WidgetService{
		store:    st,
		provider: prov,
		enqueuer: enqueuer,
		metrics:  m,
		log:      logger,
		slice:    slice,
	}
}

// FetchPrice moves the widget to loading and schedules exactly one fetch.
// It does not wait for the fetch; the result lands in the store later.
func (s *WidgetService) FetchPrice(ctx context.Context) (fetchID string, state widget.State, err error) {
	fetchID = uuid.New().String()

	state, err = s.dispatch(ctx, widget.FetchStarted())
	if err != nil {
		return "", widget.State{}, err
	}

	if err := s.enqueuer.EnqueueFetch(ctx, FetchPricePayload{FetchID: fetchID}); err != nil {
		s.log.Errorw("Failed to schedule price fetch", "fetch_id", fetchID, "error", err)
		if failed, dErr := s.dispatch(context.WithoutCancel(ctx), widget.FetchFailed()); dErr == nil {
			state = failed
		}
		return fetchID, state, ErrInternalQueue
	}

	s.log.Infow("Scheduled price fetch", "fetch_id", fetchID, "slice", s.slice)
	return fetchID, state, nil
}

// Clear resets the widget to idle regardless of its current state.
// An in-flight fetch is not canceled and may still overwrite the cleared view.
func (s *WidgetService) Clear(ctx context.Context) (widget.State, error) {
	return s.dispatch(ctx, widget.Cleared())
}

// State returns the current widget state.
func (s *WidgetService) State(ctx context.Context) (widget.State, error) {
	state, err := s.store.Load(ctx, s.slice)
	if err != nil {
		s.log.Errorw("Store load error", "slice", s.slice, "error", err)
		return widget.State{}, ErrInternal
	}
	return state, nil
}

// ProcessFetch calls the provider once and records the outcome (called by the fetch runner).
func (s *WidgetService) ProcessFetch(ctx context.Context, fetchID string) error {
	s.log.Infow("Processing price fetch", "fetch_id", fetchID)

	start := time.Now()
	quote, err := s.provider.GetPrice(ctx)
	elapsed := time.Since(start)

	// the outcome must be recorded even when the fetch ran out of time
	recordCtx := context.WithoutCancel(ctx)

	if err != nil {
		s.metrics.ObserveFetch(metrics.OutcomeError, elapsed)
		s.log.Warnw("Price fetch failed", "fetch_id", fetchID, "error", err)
		if _, dErr := s.dispatch(recordCtx, widget.FetchFailed()); dErr != nil {
			return dErr
		}
		return fmt.Errorf("fetch %s: %w", fetchID, err)
	}

	s.metrics.ObserveFetch(metrics.OutcomeSuccess, elapsed)
	s.metrics.SetPrice(quote.RateUSD)
	if _, err := s.dispatch(recordCtx, widget.FetchSucceeded(quote)); err != nil {
		return err
	}

	s.log.Infow("Price fetch success", "fetch_id", fetchID, "rate_usd", quote.RateUSD, "updated_at", quote.UpdatedAt)
	return nil
}

func (s *WidgetService) dispatch(ctx context.Context, action widget.Action) (widget.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx, s.slice)
	if err != nil {
		s.log.Errorw("Store load error", "slice", s.slice, "action", action.Type, "error", err)
		return widget.State{}, ErrInternal
	}

	next := widget.Reduce(current, action)
	if err := s.store.Save(ctx, s.slice, next); err != nil {
		s.log.Errorw("Store save error", "slice", s.slice, "action", action.Type, "error", err)
		return widget.State{}, ErrInternal
	}
	return next, nil
}
