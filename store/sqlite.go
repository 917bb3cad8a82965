package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/navreach/playbook"

	_ "modernc.org/sqlite"
)

const playbookSchema = `
CREATE TABLE IF NOT EXISTS playbooks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT,
	doc BLOB NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStoreConfig configures the SQLite document store.
type SQLiteStoreConfig struct {
	DSN string
}

// SQLiteStore persists playbook records in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite-backed document store.
func NewSQLiteStore(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite store: DSN is required")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec(playbookSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all records in creation order.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, doc, created_at, updated_at FROM playbooks ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("listing playbooks: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns a record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, doc, created_at, updated_at FROM playbooks WHERE id = ?", id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Create inserts a new record; an existing ID is an error.
func (s *SQLiteStore) Create(ctx context.Context, rec Record) error {
	docJSON, err := json.Marshal(rec.Doc)
	if err != nil {
		return fmt.Errorf("encoding playbook: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO playbooks (id, name, doc, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.Doc.Name, docJSON,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s", ErrPlaybookExists, rec.ID)
		}
		return fmt.Errorf("inserting playbook: %w", err)
	}
	return nil
}

// Update replaces an existing record; a missing ID is an error.
func (s *SQLiteStore) Update(ctx context.Context, rec Record) error {
	docJSON, err := json.Marshal(rec.Doc)
	if err != nil {
		return fmt.Errorf("encoding playbook: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE playbooks SET name = ?, doc = ?, updated_at = ? WHERE id = ?",
		rec.Doc.Name, docJSON,
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating playbook: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating playbook: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrPlaybookNotFound, rec.ID)
	}
	return nil
}

// Delete removes a record; a missing ID is an error.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM playbooks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting playbook: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting playbook: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrPlaybookNotFound, id)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec       Record
		docJSON   []byte
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&rec.ID, &docJSON, &createdAt, &updatedAt); err != nil {
		return Record{}, err
	}

	var doc playbook.Document
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return Record{}, fmt.Errorf("decoding playbook %s: %w", rec.ID, err)
	}
	rec.Doc = doc

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Record{}, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return Record{}, fmt.Errorf("parsing updated_at for %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Compile-time interface check.
var _ DocumentStore = (*SQLiteStore)(nil)
