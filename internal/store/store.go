package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// Store executes generic table operations. Every operation is one
// self-contained transaction against the shared pool; the transaction is
// the sole consistency boundary.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts one row.
func (s *Store) Create(ctx context.Context, table string, assigns []Assignment) error {
	query, args := BuildInsert(table, assigns)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}

// ReadMany returns every row matching the filters. No filters selects all
// rows; zero matches is an empty slice, not an error.
func (s *Store) ReadMany(ctx context.Context, table string, filters []Filter, opts SelectOptions) ([]Row, error) {
	query, args := BuildSelect(table, filters, opts)
	var result []Row
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		result, err = scanRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReadOne returns the single row matching the filters, or ErrNotFound.
func (s *Store) ReadOne(ctx context.Context, table string, filters []Filter) (Row, error) {
	rows, err := s.ReadMany(ctx, table, filters, SelectOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Update mutates the rows matching the filters and reports how many changed.
func (s *Store) Update(ctx context.Context, table string, filters []Filter, assigns []Assignment) (int64, error) {
	query, args := BuildUpdate(table, filters, assigns)
	return s.exec(ctx, query, args)
}

// Delete removes the rows matching the filters and reports how many went.
func (s *Store) Delete(ctx context.Context, table string, filters []Filter) (int64, error) {
	query, args := BuildDelete(table, filters)
	return s.exec(ctx, query, args)
}

// TrimToLimit drops the oldest rows (by primary key) beyond the ceiling.
// Failures are logged and swallowed so the triggering write never fails.
func (s *Store) TrimToLimit(ctx context.Context, table, idColumn string, ceiling int) {
	if ceiling <= 0 {
		return
	}
	query := BuildTrim(table, idColumn)
	if _, err := s.exec(ctx, query, []any{ceiling}); err != nil {
		log.Error().Err(err).Str("table", table).Int("ceiling", ceiling).
			Msg("retention trim failed")
	}
}

func (s *Store) exec(ctx context.Context, query string, args []any) (int64, error) {
	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// inTx brackets fn in begin/commit, rolling back on failure. A rollback
// failure is logged, not returned; the original error takes precedence.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}
