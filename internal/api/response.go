// Package api implements the HTTP surface of the BTC price widget.
package api

import (
	"encoding/json"
	"net/http"

	"btcwidget/internal/widget"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Internal error"`
}

// WidgetResponse represents the widget state
type WidgetResponse struct {
	FetchID   string  `json:"fetch_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Status    string  `json:"status" example:"success"`
	RateUSD   float64 `json:"rate_usd" example:"30000"`
	UpdatedAt string  `json:"updated_at,omitempty" example:"May 30"`
	Display   string  `json:"display" example:"USD 30000"`
	Error     string  `json:"error,omitempty" example:"Ocorreu um erro ao obter as informações"`
}

func widgetResponse(state widget.State) WidgetResponse {
	view := widget.Render(state)
	resp := WidgetResponse{
		Status:  string(view.Status),
		Display: view.Text(),
		Error:   view.Error,
	}
	if view.Price != "" {
		resp.RateUSD = state.Quote.RateUSD
		resp.UpdatedAt = view.UpdatedLabel
	}
	return resp
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
