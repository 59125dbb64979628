package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"btcwidget/internal/api"
	"btcwidget/internal/api/middleware"
	"btcwidget/internal/config"
	"btcwidget/internal/metrics"
	"btcwidget/internal/service"
	"btcwidget/internal/store"
)

const monitoringPath = "/monitoring"

// routerDeps is what the router needs from the running app.
type routerDeps struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	svc        service.WidgetServiceInterface
	store      store.Store
	asynqRedis *redis.Client
	metrics    *metrics.Metrics
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(d.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", api.HandleWidgetPage(d.svc, api.PageOptions{
		ClearLabel: d.cfg.Widget.ClearLabel,
		RefreshSec: d.cfg.Widget.RefreshSec,
	}, d.logger))
	r.Post("/btc-price/fetch", api.HandleWidgetFetch(d.svc))
	r.Post("/btc-price/clear", api.HandleWidgetClear(d.svc))

	r.Route("/api/btc-price", func(r chi.Router) {
		r.Get("/", api.HandleGetPrice(d.svc))
		r.Post("/fetch", api.HandleFetchPrice(d.svc))
		r.Post("/clear", api.HandleClearPrice(d.svc))
	})

	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(d.store, d.asynqRedis))

	if d.cfg.Server.ServeMetrics && d.metrics != nil {
		r.Handle("/metrics", d.metrics.Handler())
	}

	if d.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if d.cfg.Server.ServeAsynqmon && d.cfg.Worker.Mode == config.WorkerModeAsynq {
		mon := asynqmon.New(asynqmon.Options{
			RootPath:     monitoringPath,
			RedisConnOpt: asynq.RedisClientOpt{Addr: d.cfg.Redis.AsynqAddr},
		})
		r.Mount(monitoringPath, mon)
	}

	return r
}

func (app *App) initHTTP(svc service.WidgetServiceInterface) {
	handler := newRouter(routerDeps{
		cfg:        app.cfg,
		logger:     app.logger,
		svc:        svc,
		store:      app.store,
		asynqRedis: app.rdbAsynq,
		metrics:    app.metrics,
	})

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
