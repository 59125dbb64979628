// Package main is the entry point for the BTC price widget service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"btcwidget/internal/config"
	"btcwidget/internal/metrics"
	"btcwidget/internal/provider"
	"btcwidget/internal/service"
	"btcwidget/internal/store"
	"btcwidget/internal/worker"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg         *config.Config
	logger      *zap.SugaredLogger
	db          *sql.DB
	rdbStore    *redis.Client
	rdbAsynq    *redis.Client
	store       store.Store
	metrics     *metrics.Metrics
	inline      *worker.InlineEnqueuer
	asynqClient *asynq.Client
	asynqServer *asynq.Server
	asynqMux    *asynq.ServeMux
	httpServer  *http.Server
}

// NewApp initializes all dependencies and returns a ready-to-run App.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases database and Redis connections
func (app *App) close() error {
	var errs []error
	if app.asynqClient != nil {
		if err := app.asynqClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("asynq client close: %w", err))
		}
	}
	if app.rdbAsynq != nil {
		if err := app.rdbAsynq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis asynq close: %w", err))
		}
	}
	if app.rdbStore != nil {
		if err := app.rdbStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis store close: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (app *App) initStorage() error {
	switch app.cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := store.NewPostgresDB(&app.cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to Postgres: %w", err)
		}
		app.db = db

		if err := store.RunMigrations(app.db, app.logger); err != nil {
			return fmt.Errorf("run DB migrations: %w", err)
		}
		app.store = store.NewPostgresStore(app.db)

	case config.StoreDriverRedis:
		app.rdbStore = redis.NewClient(&redis.Options{
			Addr: app.cfg.Redis.StoreAddr,
		})
		if err := app.rdbStore.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("connect to Redis (store, %s): %w", app.cfg.Redis.StoreAddr, err)
		}
		app.logger.Infow("Connected to Redis store", "addr", app.cfg.Redis.StoreAddr)
		app.store = store.NewRedisStore(app.rdbStore)

	default:
		app.store = store.NewMemoryStore()
	}

	app.logger.Infow("Widget store ready", "driver", app.cfg.Store.Driver, "slice", app.cfg.Store.Slice)
	return nil
}

func (app *App) initServices() error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = metrics.New(reg)

	priceProvider, err := provider.NewProviderFromConfig(app.cfg.Price)
	if err != nil {
		return err
	}

	timeout := time.Duration(app.cfg.Worker.TimeoutSec) * time.Second

	var enqueuer service.Enqueuer
	if app.cfg.Worker.Mode == config.WorkerModeAsynq {
		redisOpt := asynq.RedisClientOpt{Addr: app.cfg.Redis.AsynqAddr}

		app.rdbAsynq = redis.NewClient(&redis.Options{Addr: app.cfg.Redis.AsynqAddr})
		app.asynqClient = asynq.NewClient(redisOpt)
		app.asynqServer = asynq.NewServer(
			redisOpt,
			asynq.Config{
				Concurrency:              app.cfg.Worker.Concurrency,
				DelayedTaskCheckInterval: time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
				TaskCheckInterval:        time.Duration(app.cfg.Worker.CheckIntervalSec) * time.Second,
			},
		)
		app.logger.Infow("Asynq configured", "addr", app.cfg.Redis.AsynqAddr)
		enqueuer = worker.NewAsynqEnqueuer(app.asynqClient, timeout)
	} else {
		app.inline = worker.NewInlineEnqueuer(timeout, app.logger)
		enqueuer = app.inline
	}

	widgetService := service.NewWidgetService(
		app.store,
		priceProvider,
		enqueuer,
		app.metrics,
		app.logger,
		app.cfg.Store.Slice)

	if app.inline != nil {
		app.inline.Bind(widgetService)
	}
	if app.asynqServer != nil {
		app.asynqMux = asynq.NewServeMux()
		app.asynqMux.HandleFunc(service.TaskTypeFetchPrice, worker.NewPriceFetchHandler(widgetService, app.logger))
	}

	app.initHTTP(widgetService)
	return nil
}

// Run starts the HTTP server and, in asynq mode, the worker, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	if app.asynqServer != nil {
		g.Go(func() error {
			app.logger.Infow("Starting Asynq worker server")
			if err := app.asynqServer.Start(app.asynqMux); err != nil {
				return fmt.Errorf("asynq worker failed to start: %w", err)
			}

			<-ctx.Done()
			return nil
		})
	}

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Triggered by a signal or by a failing component.
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown performs ordered teardown: HTTP server, then pending fetches, then connections.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 1. Stop accepting new HTTP requests, drain in-flight
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	// 2. Drain in-flight fetches
	if app.asynqServer != nil {
		app.asynqServer.Shutdown()
	}
	if app.inline != nil {
		app.inline.Close()
	}

	// 3. Close connections (asynq client, Redis, database)
	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
