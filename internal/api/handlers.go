package api

import (
	"errors"
	"net/http"

	"btcwidget/internal/service"
)

// HandleGetPrice godoc
// @Summary Get widget state
// @Description Returns the current widget state and the text it displays. Does not trigger a fetch.
// @Tags btc-price
// @Produce json
// @Success 200 {object} WidgetResponse "Current state"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /api/btc-price [get]
func HandleGetPrice(svc service.WidgetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.State(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			return
		}
		writeJSON(w, http.StatusOK, widgetResponse(state))
	}
}

// HandleFetchPrice godoc
// @Summary Fetch the BTC price
// @Description Moves the widget to loading and schedules one upstream fetch. Returns immediately; poll GET /api/btc-price for the outcome. Failed fetches are not retried.
// @Tags btc-price
// @Produce json
// @Success 202 {object} WidgetResponse "Fetch scheduled"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /api/btc-price/fetch [post]
func HandleFetchPrice(svc service.WidgetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fetchID, state, err := svc.FetchPrice(r.Context())
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInternalQueue):
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal queue error"})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}

		resp := widgetResponse(state)
		resp.FetchID = fetchID
		writeJSON(w, http.StatusAccepted, resp)
	}
}

// HandleClearPrice godoc
// @Summary Clear the widget
// @Description Resets the quote to zero and the status to idle. An in-flight fetch is not canceled.
// @Tags btc-price
// @Produce json
// @Success 200 {object} WidgetResponse "Widget cleared"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /api/btc-price/clear [post]
func HandleClearPrice(svc service.WidgetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.Clear(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			return
		}
		writeJSON(w, http.StatusOK, widgetResponse(state))
	}
}
