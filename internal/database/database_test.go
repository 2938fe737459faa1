package database

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteConfig(path string) config.Database {
	return config.Database{
		Driver:       config.DriverSQLite,
		Path:         path,
		QueryTimeout: time.Second,
	}
}

func TestProvider_DB_ReturnsSameHandle(t *testing.T) {
	p := New(sqliteConfig(filepath.Join(t.TempDir(), "school.db")), discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	ctx := context.Background()
	first, err := p.DB(ctx)
	require.NoError(t, err)
	second, err := p.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, config.DriverSQLite, p.Driver())
	assert.Equal(t, time.Second, p.QueryTimeout())
}

func TestProvider_DB_CreatesSchema(t *testing.T) {
	p := New(sqliteConfig(filepath.Join(t.TempDir(), "school.db")), discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	db, err := p.DB(context.Background())
	require.NoError(t, err)

	for _, table := range []string{"student", "course"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestProvider_DB_FailureIsNotSticky(t *testing.T) {
	// A regular file where the database directory should be makes the
	// first attempt fail.
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	p := New(sqliteConfig(filepath.Join(blocker, "school.db")), discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	_, err := p.DB(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	require.NoError(t, os.Remove(blocker))

	db, err := p.DB(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, db)
}

func TestProvider_DB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage", "nested", "school.db")
	p := New(sqliteConfig(path), discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	_, err := p.DB(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestProvider_UnknownDriver(t *testing.T) {
	p := New(config.Database{Driver: "mysql"}, discardLogger())

	_, err := p.DB(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.ErrorIs(t, p.Ping(context.Background()), apperrors.ErrStoreUnavailable)
}

func TestProvider_Ping(t *testing.T) {
	p := New(sqliteConfig(filepath.Join(t.TempDir(), "school.db")), discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	assert.NoError(t, p.Ping(context.Background()))
}

func TestProvider_Close(t *testing.T) {
	p := New(sqliteConfig(filepath.Join(t.TempDir(), "school.db")), discardLogger())

	// Closing a provider that never connected is fine.
	require.NoError(t, p.Close())

	_, err := p.DB(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}
