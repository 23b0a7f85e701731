// Package sqlite provides a SQLite-based relational audit report.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Detach switches a file database back to a rollback journal so the file is
// self-contained once closed.
func (db *DB) Detach(ctx context.Context) error {
	if db.path == ":memory:" {
		return nil
	}
	_, err := db.db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
	return err
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS audits (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			total_pages INTEGER NOT NULL DEFAULT 0,
			missing_canonical INTEGER NOT NULL DEFAULT 0,
			structured_data_blocks INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS pages (
			audit_id TEXT NOT NULL REFERENCES audits(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			meta_description TEXT NOT NULL DEFAULT '',
			meta_keywords TEXT NOT NULL DEFAULT '',
			meta_ai_summary TEXT NOT NULL DEFAULT '',
			canonical TEXT NOT NULL DEFAULT '',
			og_title TEXT NOT NULL DEFAULT '',
			og_description TEXT NOT NULL DEFAULT '',
			og_image TEXT NOT NULL DEFAULT '',
			twitter_card TEXT NOT NULL DEFAULT '',
			json_ld_count INTEGER NOT NULL DEFAULT 0,
			json_ld_summaries TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (audit_id, path)
		);

		CREATE TABLE IF NOT EXISTS hreflangs (
			audit_id TEXT NOT NULL,
			path TEXT NOT NULL,
			position INTEGER NOT NULL,
			hreflang TEXT NOT NULL,
			href TEXT NOT NULL,
			FOREIGN KEY (audit_id, path) REFERENCES pages(audit_id, path) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS structured_data (
			audit_id TEXT NOT NULL,
			path TEXT NOT NULL,
			position INTEGER NOT NULL,
			type_tag TEXT NOT NULL,
			parsed INTEGER NOT NULL,
			raw TEXT NOT NULL,
			raw_hash TEXT NOT NULL,
			value TEXT,
			FOREIGN KEY (audit_id, path) REFERENCES pages(audit_id, path) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS duplicates (
			audit_id TEXT NOT NULL REFERENCES audits(id) ON DELETE CASCADE,
			kind TEXT NOT NULL CHECK (kind IN ('title', 'description')),
			value TEXT NOT NULL,
			position INTEGER NOT NULL,
			path TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_structured_data_raw_hash ON structured_data(raw_hash);
		CREATE INDEX IF NOT EXISTS idx_duplicates_value ON duplicates(kind, value);
	`

	_, err := db.db.Exec(schema)
	return err
}
