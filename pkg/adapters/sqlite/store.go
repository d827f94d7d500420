package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/blockscript/pkg/block"
	"github.com/aretw0/blockscript/pkg/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS scripts (
	id         TEXT PRIMARY KEY,
	document   BLOB NOT NULL,
	stats      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store implements ports.ScriptStore on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for a
// private in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New prepares the schema on an existing database handle.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the record.
func (s *Store) Save(ctx context.Context, rec ports.ScriptRecord) error {
	if rec.ID == "" {
		return &block.ArgumentError{Name: "id", Reason: "must not be empty"}
	}
	snap, err := ports.MarshalSnapshot(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	var updated int64
	if !rec.UpdatedAt.IsZero() {
		updated = rec.UpdatedAt.UnixNano()
	}
	doc := rec.Document
	if doc == nil {
		doc = []byte{}
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO scripts (id, document, stats, updated_at) VALUES (?, ?, ?, ?)",
		rec.ID, doc, snap, updated,
	)
	if err != nil {
		return fmt.Errorf("saving script: %w", err)
	}
	return nil
}

// Load retrieves a record.
func (s *Store) Load(ctx context.Context, id string) (ports.ScriptRecord, error) {
	var (
		doc, snap []byte
		updated   int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT document, stats, updated_at FROM scripts WHERE id = ?", id,
	).Scan(&doc, &snap, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.ScriptRecord{}, ports.ErrScriptNotFound
		}
		return ports.ScriptRecord{}, fmt.Errorf("querying script: %w", err)
	}

	rec := ports.ScriptRecord{ID: id, Document: doc}
	if err := ports.UnmarshalSnapshot(snap, &rec); err != nil {
		return ports.ScriptRecord{}, err
	}
	if updated != 0 {
		rec.UpdatedAt = time.Unix(0, updated).UTC()
	}
	return rec, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM scripts WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting script: %w", err)
	}
	return nil
}

// List returns all IDs in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM scripts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing scripts: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning script id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
