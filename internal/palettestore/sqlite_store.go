// Package palettestore provides persistent storage for user-defined colormaps using SQLite.
package palettestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/customcolour/colormaps/pkg/colormap"
)

// Store provides persistent storage for saved colormaps using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore creates a new SQLite-based palette store.
func NewStore(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS palettes (
		name TEXT PRIMARY KEY,
		def_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_palettes_created ON palettes(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a colormap, replacing any previous map with the same name.
func (s *Store) Save(m *colormap.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal colormap: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO palettes (name, def_json, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET def_json = excluded.def_json`,
		m.Name(), string(defJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save colormap: %w", err)
	}
	return nil
}

// Get returns the saved colormap with the given name, or
// *colormap.NotFoundError when it does not exist.
func (s *Store) Get(name string) (*colormap.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var defJSON string
	err := s.db.QueryRow(`SELECT def_json FROM palettes WHERE name = ?`, name).Scan(&defJSON)
	if err == sql.ErrNoRows {
		return nil, &colormap.NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query colormap: %w", err)
	}

	var m colormap.Map
	if err := json.Unmarshal([]byte(defJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to decode colormap %q: %w", name, err)
	}
	return &m, nil
}

// List returns all saved colormaps, oldest first.
func (s *Store) List() ([]*colormap.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT def_json FROM palettes ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list colormaps: %w", err)
	}
	defer rows.Close()

	var maps []*colormap.Map
	for rows.Next() {
		var defJSON string
		if err := rows.Scan(&defJSON); err != nil {
			return nil, fmt.Errorf("failed to scan colormap: %w", err)
		}
		var m colormap.Map
		if err := json.Unmarshal([]byte(defJSON), &m); err != nil {
			return nil, fmt.Errorf("failed to decode colormap: %w", err)
		}
		maps = append(maps, &m)
	}
	return maps, rows.Err()
}

// Delete removes a saved colormap. Deleting an unknown name returns
// *colormap.NotFoundError.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM palettes WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete colormap: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &colormap.NotFoundError{Name: name}
	}
	return nil
}
