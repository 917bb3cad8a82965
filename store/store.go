// Package store persists playbook documents. The graph engine treats it
// as an opaque document store: structural validation runs at save time,
// but capabilities and execution_defaults contents are never inspected.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// Sentinel errors for store operations.
var (
	ErrPlaybookExists   = errors.New("playbook already exists")
	ErrPlaybookNotFound = errors.New("playbook not found")

	// ErrMissingStart blocks a save of a playbook with no start node.
	ErrMissingStart = errors.New("playbook has no start node")

	// ErrMissingEnd blocks a save of a playbook with no end node, unless
	// the playbook runs in fully autonomous mode.
	ErrMissingEnd = errors.New("playbook has no end node")
)

// Record represents a stored playbook.
type Record struct {
	ID        string            `json:"id"`
	Doc       playbook.Document `json:"doc"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DocumentStore provides CRUD operations for playbook records.
type DocumentStore interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, bool, error)
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) error
}

// ValidateForSave runs the save-time structural checks: the graph must
// have a start node, and an end node unless the playbook is fully
// autonomous. A failed check blocks the save; graph and persisted state
// are both left unchanged.
func ValidateForSave(doc playbook.Document) error {
	hasStart := false
	hasEnd := false
	for _, n := range doc.Graph.Nodes {
		switch n.Type {
		case registry.TypeStart:
			hasStart = true
		case registry.TypeEnd:
			hasEnd = true
		}
	}

	if !hasStart {
		return ErrMissingStart
	}
	if !hasEnd && doc.ExecutionMode() != playbook.ModeAutonomous {
		return ErrMissingEnd
	}
	return nil
}

// Save validates and persists a document, creating a record when ID is
// empty and updating otherwise. Returns the record ID.
func Save(ctx context.Context, s DocumentStore, id string, doc playbook.Document) (string, error) {
	if err := ValidateForSave(doc); err != nil {
		return "", fmt.Errorf("validating playbook: %w", err)
	}

	now := time.Now().UTC()
	if id == "" {
		rec := Record{ID: uuid.NewString(), Doc: doc, CreatedAt: now, UpdatedAt: now}
		if err := s.Create(ctx, rec); err != nil {
			return "", err
		}
		return rec.ID, nil
	}

	existing, ok, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPlaybookNotFound, id)
	}
	existing.Doc = doc
	existing.UpdatedAt = now
	if err := s.Update(ctx, existing); err != nil {
		return "", err
	}
	return id, nil
}
