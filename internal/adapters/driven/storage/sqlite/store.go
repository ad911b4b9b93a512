// Package sqlite provides the durable local draft cache.
//
// The cache holds a single JSON-encoded snapshot of the draft's line items
// under a fixed key. It is read once at startup and rewritten after every
// draft mutation; match state is never cached.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DraftCache = (*Store)(nil)

// draftKey is the fixed cache key for the current order draft.
const draftKey = "order_draft"

// schema bootstraps the cache table.
const schema = `
CREATE TABLE IF NOT EXISTS draft_cache (
	draft_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed draft cache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a draft cache at the specified data directory.
// If dataDir is empty, defaults to ~/.ordermatch/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ordermatch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "draft.db")

	// WAL mode: the fire-and-forget mirror writes from the draft service
	// may overlap a read at startup.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating draft_cache table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Write replaces the cached snapshot with items.
func (s *Store) Write(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO draft_cache (draft_key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(draft_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, draftKey, string(payload))
	if err != nil {
		return fmt.Errorf("writing draft cache: %w", err)
	}
	return nil
}

// Read returns the cached snapshot. A first run with no prior cache
// yields an empty slice.
func (s *Store) Read(ctx context.Context) ([]domain.LineItem, error) {
	var payload string
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM draft_cache WHERE draft_key = ?", draftKey)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []domain.LineItem{}, nil
		}
		return nil, fmt.Errorf("reading draft cache: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}
