// Package history keeps a local log of submitted queries. Only the query
// itself and its outcome are stored, never the returned records.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one submitted primary query.
type Entry struct {
	ID        int64
	Mode      string
	Input     string
	Dataset   string
	Limit     int
	Count     int
	Error     string
	CreatedAt time.Time
}

// Store is a sqlite-backed query history. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens the history database at path. ":memory:" gives a
// private in-memory store.
func Open(path string) (*Store, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One connection keeps in-memory databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		input TEXT NOT NULL,
		dataset TEXT NOT NULL,
		lim INTEGER NOT NULL DEFAULT 0,
		result_count INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_queries_created ON queries(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_queries_mode ON queries(mode, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a query. CreatedAt defaults to now.
func (s *Store) Add(e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO queries (mode, input, dataset, lim, result_count, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Mode, e.Input, e.Dataset, e.Limit, e.Count, e.Error, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert query: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first. An empty mode matches all.
func (s *Store) Recent(mode string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, mode, input, dataset, lim, result_count, error, created_at
		 FROM queries
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Mode, &e.Input, &e.Dataset, &e.Limit, &e.Count, &e.Error, &created); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear removes every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM queries`)
	return err
}
