// Package sqlite implements the store interfaces on a local SQLite
// database. The scheduler's review throughput is low, so a single
// serialized connection is the whole concurrency story: the driver
// connection acts as the one lock around reads and writes, and it is
// never held across model computation.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/cloudrumbles/avvai/internal/store"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB wraps the shared SQLite connection handle.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies
// migrations. Returns store.ErrStorageUnavailable if the file cannot be
// opened or migrated.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create database directory: %v", store.ErrStorageUnavailable, err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", store.ErrStorageUnavailable, err)
	}

	// Single writer, multiple readers; the connection is the lock.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %v", store.ErrStorageUnavailable, err)
	}

	if err := migrate(conn, logger); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Conn returns the underlying *sql.DB for the store implementations.
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// migrate applies the embedded goose migrations.
func migrate(conn *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{logger: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%w: set goose dialect: %v", store.ErrStorageUnavailable, err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		return fmt.Errorf("%w: apply migrations: %v", store.ErrStorageUnavailable, err)
	}
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "goose")
}
