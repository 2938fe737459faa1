// Package sqlstore implements the storage repositories on top of
// database/sql. The same code serves SQLite (mattn/go-sqlite3) and
// PostgreSQL (jackc/pgx stdlib); statements are built with squirrel so
// the placeholder style follows the driver.
//
// Every statement is parameterized. Never build SQL by concatenating user
// input: the driver sends the query and the values separately, and the
// database treats the values as pure data.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/storage"
)

// Connector supplies the shared database handle.
// *database.Provider satisfies it.
type Connector interface {
	DB(ctx context.Context) (*sql.DB, error)
	Driver() string
	QueryTimeout() time.Duration
}

// store is the plumbing shared by StudentStore and CourseStore.
type store struct {
	conn Connector
	sb   sq.StatementBuilderType
	log  *slog.Logger
}

func newStore(conn Connector, log *slog.Logger) store {
	if log == nil {
		log = slog.Default()
	}
	var format sq.PlaceholderFormat = sq.Question
	if conn.Driver() == config.DriverPostgres {
		format = sq.Dollar
	}
	return store{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(format),
		log:  log,
	}
}

// withTimeout applies the configured per-statement deadline, if any.
func (s *store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := s.conn.QueryTimeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// queryRow runs a single-row query and scans it into dest.
// found is false when the query matched nothing.
func (s *store) queryRow(ctx context.Context, op string, q sq.Sqlizer, dest ...any) (bool, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: build query: %w", op, err)
	}

	db, err := s.conn.DB(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	// QueryRow returns exactly one row. If the query finds no match the
	// error surfaces only when you call Scan, as sql.ErrNoRows.
	err = db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, s.fail(op, err)
	}
	return true, nil
}

// query runs a multi-row query and calls scan once per row.
func (s *store) query(ctx context.Context, op string, q sq.Sqlizer, scan func(*sql.Rows) error) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	db, err := s.conn.DB(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return s.fail(op, err)
	}
	defer rows.Close() // must close rows to free the DB connection

	for rows.Next() {
		if err := scan(rows); err != nil {
			return s.fail(op, err)
		}
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return s.fail(op, err)
	}
	return nil
}

// exec runs an UPDATE or DELETE and reports whether any row matched.
func (s *store) exec(ctx context.Context, op string, q sq.Sqlizer) (storage.Outcome, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: build query: %w", op, err)
	}

	db, err := s.conn.DB(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, s.fail(op, err)
	}
	if n == 0 {
		return storage.NotFound, nil
	}
	return storage.Applied, nil
}

// fail logs a statement failure with whatever the driver can tell us and
// wraps it in apperrors.ErrStoreOperationFailed.
func (s *store) fail(op string, err error) error {
	attrs := []any{
		slog.String("op", op),
		slog.String("error", err.Error()),
	}

	var pgErr *pgconn.PgError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr):
		attrs = append(attrs,
			slog.String("sqlstate", pgErr.Code),
			slog.String("constraint", pgErr.ConstraintName))
	case errors.As(err, &liteErr):
		attrs = append(attrs,
			slog.Int("sqlite_code", int(liteErr.Code)),
			slog.Int("sqlite_extended_code", int(liteErr.ExtendedCode)))
	}

	s.log.Error("statement failed", attrs...)
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStoreOperationFailed, err)
}
