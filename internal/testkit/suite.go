package testkit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"btcwidget/internal/config"
	"btcwidget/internal/store"
)

// Suite owns the Postgres and Redis instances behind the widget stores.
// After Setup the database carries the widget_state schema.
type Suite struct {
	mu         sync.Mutex
	cfg        Config
	containers []testcontainers.Container
	db         *sql.DB
	rdb        *redis.Client
}

var (
	globalSuite *Suite
	globalOnce  sync.Once
)

// Global returns the suite shared by a test binary.
func Global() *Suite {
	globalOnce.Do(func() {
		globalSuite = &Suite{cfg: LoadConfig()}
	})
	return globalSuite
}

// Setup starts both instances, applies the migrations and opens the clients.
func (s *Suite) Setup(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return errors.New("suite already set up; call Shutdown first")
	}
	defer func() {
		if err != nil {
			s.teardown(ctx)
		}
	}()

	dsn, pgCtr, err := startPostgres(ctx, s.cfg)
	if err != nil {
		return err
	}
	s.track(pgCtr)

	s.db, err = store.NewPostgresDB(&config.DatabaseConfig{
		DSN:                dsn,
		MaxOpenConns:       5,
		MaxIdleConns:       2,
		ConnMaxLifetimeSec: 60,
	})
	if err != nil {
		return fmt.Errorf("open test database: %w", err)
	}
	if err := store.RunMigrations(s.db, zap.NewNop().Sugar()); err != nil {
		return fmt.Errorf("migrate test database: %w", err)
	}

	addr, redisCtr, err := startRedis(ctx, s.cfg)
	if err != nil {
		return err
	}
	s.track(redisCtr)

	s.rdb = redis.NewClient(&redis.Options{Addr: addr})
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping test redis %s: %w", addr, err)
	}
	return nil
}

func (s *Suite) track(ctr testcontainers.Container) {
	if ctr != nil {
		s.containers = append(s.containers, ctr)
	}
}

// Shutdown closes the clients and terminates the containers unless BTCWIDGET_KEEP_CONTAINERS is set.
func (s *Suite) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown(ctx)
}

func (s *Suite) teardown(ctx context.Context) {
	if s.rdb != nil {
		if s.cfg.KeepContainers {
			fmt.Println("testkit: keeping redis at", s.rdb.Options().Addr)
		}
		_ = s.rdb.Close()
		s.rdb = nil
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	if !s.cfg.KeepContainers {
		for _, ctr := range s.containers {
			if err := ctr.Terminate(ctx); err != nil {
				fmt.Println("testkit: failed to terminate container:", err)
			}
		}
	}
	s.containers = nil
}

// DB returns the migrated test database.
func (s *Suite) DB() *sql.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// Redis returns the client of the test Redis instance.
func (s *Suite) Redis() *redis.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rdb
}

// PostgresStore returns a widget store on the test database.
func (s *Suite) PostgresStore() *store.PostgresStore {
	return store.NewPostgresStore(s.DB())
}

// RedisStore returns a widget store on the test Redis instance.
func (s *Suite) RedisStore() *store.RedisStore {
	return store.NewRedisStore(s.Redis())
}

// Reset empties widget_state and the Redis database, which also holds the asynq queues.
func (s *Suite) Reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.DB().ExecContext(ctx, "TRUNCATE TABLE widget_state"); err != nil {
		t.Fatalf("truncate widget_state: %v", err)
	}
	if err := s.Redis().FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis: %v", err)
	}
}

// Run sets the suite up, runs the tests and shuts it down. Intended for TestMain.
func (s *Suite) Run(m *testing.M) {
	ctx := context.Background()

	if err := s.Setup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	s.Shutdown(ctx)
	os.Exit(code)
}

// Run delegates to Global().Run.
func Run(m *testing.M) {
	Global().Run(m)
}
