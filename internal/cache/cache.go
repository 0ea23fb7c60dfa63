// Package cache persists the last fetched tree snapshot per server so the
// browser can paint something immediately on startup while the live fetch is
// in flight. The cached copy is always treated as stale.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	server_url TEXT PRIMARY KEY,
	fetched_at INTEGER NOT NULL,
	payload    BLOB NOT NULL
);
`

// Store is a small sqlite-backed snapshot cache.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Put stores the raw snapshot payload for serverURL, replacing any previous
// entry.
func (s *Store) Put(serverURL string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (server_url, fetched_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT(server_url) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`,
		serverURL, time.Now().Unix(), payload)
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Get returns the cached payload for serverURL and when it was fetched.
// ok is false when there is no entry.
func (s *Store) Get(serverURL string) (payload []byte, fetchedAt time.Time, ok bool, err error) {
	var unix int64
	row := s.db.QueryRow(`SELECT fetched_at, payload FROM snapshots WHERE server_url = ?`, serverURL)
	if err := row.Scan(&unix, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("cache: get: %w", err)
	}
	return payload, time.Unix(unix, 0), true, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
