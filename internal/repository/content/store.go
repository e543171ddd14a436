// Package content is the relational store for CMS entities, backed by SQLite.
package content

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store provides CRUD access to blogs, projects, offerings and contacts.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		// WAL mode for concurrent reads; busy_timeout handles lock contention.
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer; modernc.org/sqlite serializes writes anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS blogs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		slug       TEXT NOT NULL UNIQUE,
		author     TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		thumbnail  TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'draft',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_blogs_status ON blogs(status);
	CREATE INDEX IF NOT EXISTS idx_blogs_created ON blogs(created_at DESC);

	CREATE TABLE IF NOT EXISTS projects (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		year       TEXT NOT NULL DEFAULT '',
		area       TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'draft',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);

	CREATE TABLE IF NOT EXISTS offerings (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		icon        TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		features    TEXT NOT NULL DEFAULT '',
		price       TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		service_id INTEGER NOT NULL DEFAULT 0,
		message    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'pending',
		note       TEXT NOT NULL DEFAULT '',
		handled_by TEXT NOT NULL DEFAULT '',
		handled_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
