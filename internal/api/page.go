package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"btcwidget/internal/service"
	"btcwidget/internal/widget"
)

//go:embed templates/widget.html
var templatesFS embed.FS

var widgetTemplate = template.Must(template.ParseFS(templatesFS, "templates/widget.html"))

// PageOptions holds presentation settings of the widget page.
type PageOptions struct {
	ClearLabel string
	RefreshSec int
}

type pageData struct {
	View         widget.View
	FetchLabel   string
	ClearLabel   string
	LoadingLabel string
	RefreshSec   int
}

// HandleWidgetPage renders the widget. While a fetch is pending the page refreshes itself.
func HandleWidgetPage(svc service.WidgetServiceInterface, opts PageOptions, logger *zap.SugaredLogger) http.HandlerFunc {
	if opts.ClearLabel == "" {
		opts.ClearLabel = widget.ClearLabel
	}
	if opts.RefreshSec <= 0 {
		opts.RefreshSec = 1
	}
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.State(r.Context())
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		err = widgetTemplate.Execute(&buf, pageData{
			View:         widget.Render(state),
			FetchLabel:   widget.FetchLabel,
			ClearLabel:   opts.ClearLabel,
			LoadingLabel: widget.LoadingLabel,
			RefreshSec:   opts.RefreshSec,
		})
		if err != nil {
			logger.Errorw("Widget template error", "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w)
	}
}

// HandleWidgetFetch handles the fetch button and redirects back to the widget.
// A scheduling failure is already recorded as the error state, so it redirects too.
func HandleWidgetFetch(svc service.WidgetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := svc.FetchPrice(r.Context()); err != nil && !errors.Is(err, service.ErrInternalQueue) {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleWidgetClear handles the clear button and redirects back to the widget.
func HandleWidgetClear(svc service.WidgetServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Clear(r.Context()); err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
