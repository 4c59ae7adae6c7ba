// Package store provides durable single-slot storage backed by SQLite. Each
// slot holds one serialized value; a save replaces the whole value
// (last-writer-wins, no merge).
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists named slots in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updatedAt REAL NOT NULL
	);
`

// Open opens (creating if needed) the database at path with WAL enabled.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the value stored under key. ok is false when the slot has never
// been written.
func (s *Store) Load(key string) (value string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load slot %q: %w", key, err)
	}
	return value, true, nil
}

// Save overwrites the value stored under key. The write is a single upsert,
// so readers never observe a partial value.
func (s *Store) Save(key, value string) error {
	now := float64(time.Now().UnixNano()) / 1e9
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updatedAt) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = excluded.updatedAt
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", key, err)
	}
	return nil
}
