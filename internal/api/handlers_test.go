package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"btcwidget/internal/service"
	"btcwidget/internal/store"
	"btcwidget/internal/widget"
)

func decodeWidget(t *testing.T, w *httptest.ResponseRecorder) WidgetResponse {
	t.Helper()
	var resp WidgetResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestHandleGetPrice(t *testing.T) {
	t.Run("success state returns rate and label", func(t *testing.T) {
		svc := &mockWidgetService{
			stateFunc: func(ctx context.Context) (widget.State, error) {
				return widget.State{Status: widget.StatusSuccess, Quote: widget.Quote{RateUSD: 30000, UpdatedAt: "May 30"}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/btc-price", nil)
		w := httptest.NewRecorder()
		HandleGetPrice(svc).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		resp := decodeWidget(t, w)
		if resp.Status != "success" || resp.RateUSD != 30000 || resp.UpdatedAt != "May 30" {
			t.Errorf("Unexpected response: %+v", resp)
		}
		if resp.Display != "USD 30000" {
			t.Errorf("Expected display 'USD 30000', got %q", resp.Display)
		}
	})

	t.Run("idle state shows USD 0", func(t *testing.T) {
		svc := &mockWidgetService{
			stateFunc: func(ctx context.Context) (widget.State, error) {
				return widget.State{Status: widget.StatusIdle}, nil
			},
		}

		w := httptest.NewRecorder()
		HandleGetPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/btc-price", nil))

		resp := decodeWidget(t, w)
		if resp.Display != "USD 0" || resp.RateUSD != 0 {
			t.Errorf("Unexpected response: %+v", resp)
		}
	})

	t.Run("error state hides rate", func(t *testing.T) {
		svc := &mockWidgetService{
			stateFunc: func(ctx context.Context) (widget.State, error) {
				return widget.State{Status: widget.StatusError}, nil
			},
		}

		w := httptest.NewRecorder()
		HandleGetPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/btc-price", nil))

		resp := decodeWidget(t, w)
		if resp.Error != widget.ErrorMessage || resp.Display != widget.ErrorMessage {
			t.Errorf("Expected fixed error message, got %+v", resp)
		}
		if resp.UpdatedAt != "" {
			t.Errorf("Expected no updated_at, got %q", resp.UpdatedAt)
		}
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		svc := &mockWidgetService{
			stateFunc: func(ctx context.Context) (widget.State, error) {
				return widget.State{}, service.ErrInternal
			},
		}

		w := httptest.NewRecorder()
		HandleGetPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/btc-price", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}

func TestHandleFetchPrice(t *testing.T) {
	t.Run("returns 202 with loading state", func(t *testing.T) {
		svc := &mockWidgetService{
			fetchPriceFunc: func(ctx context.Context) (string, widget.State, error) {
				return "fetch-123", widget.State{Status: widget.StatusLoading}, nil
			},
		}

		w := httptest.NewRecorder()
		HandleFetchPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/btc-price/fetch", nil))

		if w.Code != http.StatusAccepted {
			t.Errorf("Expected status 202, got %d", w.Code)
		}
		resp := decodeWidget(t, w)
		if resp.FetchID != "fetch-123" {
			t.Errorf("Expected fetch_id 'fetch-123', got %s", resp.FetchID)
		}
		if resp.Status != "loading" || resp.Display != widget.LoadingLabel {
			t.Errorf("Expected loading state, got %+v", resp)
		}
	})

	t.Run("queue failure returns 500", func(t *testing.T) {
		svc := &mockWidgetService{
			fetchPriceFunc: func(ctx context.Context) (string, widget.State, error) {
				return "fetch-123", widget.State{Status: widget.StatusError}, service.ErrInternalQueue
			},
		}

		w := httptest.NewRecorder()
		HandleFetchPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/btc-price/fetch", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "Internal queue error" {
			t.Errorf("Expected 'Internal queue error', got %q", resp.Error)
		}
	})
}

func TestHandleClearPrice(t *testing.T) {
	svc := &mockWidgetService{
		clearFunc: func(ctx context.Context) (widget.State, error) {
			return widget.State{Status: widget.StatusIdle}, nil
		},
	}

	w := httptest.NewRecorder()
	HandleClearPrice(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/btc-price/clear", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	resp := decodeWidget(t, w)
	if resp.Status != "idle" || resp.Display != "USD 0" {
		t.Errorf("Expected idle state, got %+v", resp)
	}
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler := HandleHealthz()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

type downStore struct{ store.MemoryStore }

func (*downStore) Ping(context.Context) error { return errors.New("down") }

func TestHandleReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleReadyz(store.NewMemoryStore(), nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("store down", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleReadyz(&downStore{}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}
