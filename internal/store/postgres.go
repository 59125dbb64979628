package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"btcwidget/internal/widget"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps one row per slice in the widget_state table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load returns the row of slice, or the idle state when there is none.
func (s *PostgresStore) Load(ctx context.Context, slice string) (widget.State, error) {
	query := `SELECT status::text, rate_usd, updated_label
              FROM widget_state
              WHERE slice=$1`

	var state widget.State
	var status string
	err := s.db.QueryRowContext(ctx, query, slice).Scan(&status, &state.Quote.RateUSD, &state.Quote.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return widget.State{Status: widget.StatusIdle}, nil
		}
		return widget.State{}, fmt.Errorf("postgres load %s: %w", slice, err)
	}
	state.Status = widget.Status(status)
	return state.Normalize(), nil
}

// Save upserts the row of slice.
func (s *PostgresStore) Save(ctx context.Context, slice string, state widget.State) error {
	state = state.Normalize()
	query := `INSERT INTO widget_state (slice, status, rate_usd, updated_label, changed_at)
              VALUES ($1, $2::widget_status, $3, $4, NOW())
              ON CONFLICT (slice)
              DO UPDATE SET status = EXCLUDED.status,
                            rate_usd = EXCLUDED.rate_usd,
                            updated_label = EXCLUDED.updated_label,
                            changed_at = EXCLUDED.changed_at`

	if _, err := s.db.ExecContext(ctx, query, slice, string(state.Status), state.Quote.RateUSD, state.Quote.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return fmt.Errorf("postgres save %s: %w: %s", slice, ErrInvalidState, pgErr.ConstraintName)
		}
		return fmt.Errorf("postgres save %s: %w", slice, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
