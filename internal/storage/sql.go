package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLStorage keeps keys in a SQLite table.
type SQLStorage struct {
	db *sqlx.DB
}

// OpenSQL opens (and migrates) the SQLite database at path. Use ":memory:"
// for a throwaway store.
func OpenSQL(path string) (*SQLStorage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	// Single connection keeps :memory: databases shared and serialises writers.
	db.SetMaxOpenConns(1)
	return NewSQL(db)
}

// NewSQL wraps an existing connection and ensures the schema exists.
func NewSQL(db *sqlx.DB) (*SQLStorage, error) {
	if db == nil {
		return nil, fmt.Errorf("storage db is nil")
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("migrate storage: %w", err)
	}
	return &SQLStorage{db: db}, nil
}

// Close releases the database handle.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *SQLStorage) Get(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *SQLStorage) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Missing keys are ignored.
func (s *SQLStorage) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
