//go:build !js && !wasip1

package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// sqliteEngine runs statements against a local SQLite database.
type sqliteEngine struct {
	db *sqlx.DB
}

// openEngine opens (or creates) the SQLite database at dbPath.
func openEngine(dbPath string) (Engine, error) {
	return OpenSQLite(dbPath)
}

// OpenSQLite opens (or creates) a SQLite database at dbPath and enables
// WAL mode. The pool is limited to one connection so statements run
// serially, which also keeps ":memory:" databases coherent.
func OpenSQLite(dbPath string) (Engine, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("opening sqlite db: empty path")
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	return &sqliteEngine{db: db}, nil
}

func (e *sqliteEngine) Exec(ctx context.Context, query string, args ...any) error {
	_, err := e.db.ExecContext(ctx, query, args...)
	return err
}

func (e *sqliteEngine) Select(ctx context.Context, dest any, query string, args ...any) error {
	return e.db.SelectContext(ctx, dest, query, args...)
}

func (e *sqliteEngine) Supported() bool { return true }

// Close closes the underlying database connection.
func (e *sqliteEngine) Close() error {
	return e.db.Close()
}
