// Package chunkstore persists per-chunk metadata in SQLite, keyed by a
// sequential id aligned with vector index row order.
package chunkstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"semsearch/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    file TEXT NOT NULL,
    seq  INTEGER NOT NULL,
    body TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_file ON chunks(file);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Store wraps the chunk database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the chunk database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk store: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// OpenExisting opens the chunk database at path, failing if it is absent.
// Used by search, where a missing store means no build has run.
func OpenExisting(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return Open(path)
}

// Reset drops all records and restarts id assignment at 1. A build calls
// this once before inserting the new generation.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to wipe chunks: %w", err)
	}
	// AUTOINCREMENT keeps its high-water mark across DELETE; clear it so
	// the next generation's ids start at 1 again.
	if _, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name = 'chunks'"); err != nil {
		return fmt.Errorf("failed to reset id sequence: %w", err)
	}
	return nil
}

// Insert appends one chunk record and returns its assigned id. Ids are
// strictly increasing from 1 in insertion order, which must match the
// order vectors are added to the index.
func (s *Store) Insert(file string, seq int, text string) (int64, error) {
	res, err := s.db.Exec("INSERT INTO chunks (file, seq, body) VALUES (?, ?, ?)", file, seq, text)
	if err != nil {
		return 0, fmt.Errorf("failed to insert chunk: %w", err)
	}
	return res.LastInsertId()
}

// Get returns the record with the given id, or domain.ErrNotFound.
func (s *Store) Get(id int64) (domain.ChunkRecord, error) {
	var rec domain.ChunkRecord
	err := s.db.QueryRow("SELECT id, file, seq, body FROM chunks WHERE id = ?", id).
		Scan(&rec.ID, &rec.File, &rec.Seq, &rec.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ChunkRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ChunkRecord{}, fmt.Errorf("failed to get chunk %d: %w", id, err)
	}
	return rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// SetGeneration records the build generation this store belongs to.
// Search compares it against the index manifest to detect a store and
// index pair left misaligned by an interrupted build.
func (s *Store) SetGeneration(gen string) error {
	_, err := s.db.Exec(
		"INSERT INTO meta (key, value) VALUES ('generation', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		gen,
	)
	if err != nil {
		return fmt.Errorf("failed to set generation: %w", err)
	}
	return nil
}

// Generation returns the stored build generation, or "" if never set.
func (s *Store) Generation() (string, error) {
	var gen string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'generation'").Scan(&gen)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return gen, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
