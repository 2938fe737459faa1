// Package database owns the lifecycle of the shared database handle.
//
// A Provider is constructed explicitly and handed to the repositories; the
// connection itself is opened lazily, on the first call to DB, and reused
// for the rest of the process. *sql.DB is a pool, so the handle is safe to
// share between concurrent HTTP requests.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/config"

	// Blank imports: side-effect only. Each registers a database/sql
	// driver: "sqlite3" (mattn/go-sqlite3) and "pgx" (jackc/pgx stdlib).
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// PingTimeout bounds the connectivity check made when the pool is opened.
const PingTimeout = 5 * time.Second

// Provider supplies one shared *sql.DB, created on first use.
//
// A failed attempt is not remembered: the next call to DB tries again, so
// a database that comes up after the application recovers on its own.
type Provider struct {
	cfg config.Database
	log *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// New returns a Provider for cfg. No connection is made until DB is called.
func New(cfg config.Database, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{cfg: cfg, log: log}
}

// Driver returns the configured database/sql driver name.
func (p *Provider) Driver() string {
	return p.cfg.Driver
}

// QueryTimeout returns the per-statement deadline from the configuration.
func (p *Provider) QueryTimeout() time.Duration {
	return p.cfg.QueryTimeout
}

// DB returns the shared handle, opening it on first use.
// Errors wrap apperrors.ErrStoreUnavailable.
func (p *Provider) DB(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := p.open(ctx)
	if err != nil {
		p.log.Error("database connection failed",
			slog.String("driver", p.cfg.Driver),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	p.log.Info("database connected", slog.String("driver", p.cfg.Driver))
	p.db = db
	return db, nil
}

func (p *Provider) open(ctx context.Context) (*sql.DB, error) {
	if p.cfg.Driver == config.DriverSQLite {
		// SQLite creates the file but not the directory it lives in.
		if err := os.MkdirAll(filepath.Dir(p.cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet; it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open(p.cfg.Driver, p.cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.cfg.Driver, err)
	}

	if p.cfg.Driver == config.DriverSQLite {
		// One physical connection: SQLite serialises writers anyway, and
		// a single connection avoids "database is locked" between them.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := createSchema(ctx, db, p.cfg.Driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Ping opens the connection if needed and checks that it is alive.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.DB(ctx)
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: ping: %w", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the pool. It is safe to call on a Provider that never
// connected, and more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	p.log.Info("closing database connection")
	err := p.db.Close()
	p.db = nil
	return err
}
