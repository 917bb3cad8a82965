package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

func docWith(types ...string) playbook.Document {
	var nodes []playbook.Node
	for i, typ := range types {
		nodes = append(nodes, playbook.Node{ID: string(rune('a' + i)), Type: typ})
	}
	return playbook.Document{Name: "Test", Graph: playbook.Graph{Nodes: nodes}}
}

func TestValidateForSave(t *testing.T) {
	tests := []struct {
		name    string
		doc     playbook.Document
		wantErr error
	}{
		{"complete", docWith(registry.TypeStart, "navigate", registry.TypeEnd), nil},
		{"no start", docWith("navigate", registry.TypeEnd), ErrMissingStart},
		{"no end", docWith(registry.TypeStart, "navigate"), ErrMissingEnd},
		{"empty", playbook.Document{}, ErrMissingStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForSave(tt.doc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateForSave() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateForSave_AutonomousSkipsEndCheck(t *testing.T) {
	doc := docWith(registry.TypeStart, "navigate")
	doc.ExecutionDefaults = map[string]any{"mode": playbook.ModeAutonomous}

	if err := ValidateForSave(doc); err != nil {
		t.Errorf("ValidateForSave() error = %v, want nil for autonomous mode", err)
	}

	// Start is required even in autonomous mode.
	doc = docWith("navigate")
	doc.ExecutionDefaults = map[string]any{"mode": playbook.ModeAutonomous}
	if err := ValidateForSave(doc); !errors.Is(err, ErrMissingStart) {
		t.Errorf("ValidateForSave() error = %v, want ErrMissingStart", err)
	}
}

func TestSave_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := docWith(registry.TypeStart, registry.TypeEnd)

	id, err := Save(ctx, s, "", doc)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty id on create")
	}

	doc.Name = "Renamed"
	id2, err := Save(ctx, s, id, doc)
	if err != nil {
		t.Fatalf("Save() update error = %v", err)
	}
	if id2 != id {
		t.Errorf("Save() update returned %q, want %q", id2, id)
	}

	rec, ok, _ := s.Get(ctx, id)
	if !ok {
		t.Fatal("Get() after update: not found")
	}
	if rec.Doc.Name != "Renamed" {
		t.Errorf("rec.Doc.Name = %q, want %q", rec.Doc.Name, "Renamed")
	}
	if !rec.UpdatedAt.After(rec.CreatedAt) && !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Errorf("UpdatedAt %v before CreatedAt %v", rec.UpdatedAt, rec.CreatedAt)
	}
}

func TestSave_InvalidDocumentBlocked(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := Save(ctx, s, "", docWith("navigate"))
	if !errors.Is(err, ErrMissingStart) {
		t.Fatalf("Save() error = %v, want ErrMissingStart", err)
	}

	recs, _ := s.List(ctx)
	if len(recs) != 0 {
		t.Errorf("len(List()) = %v, want 0 after blocked save", len(recs))
	}
}

func TestSave_UpdateMissing(t *testing.T) {
	_, err := Save(context.Background(), NewMemoryStore(), "ghost", docWith(registry.TypeStart, registry.TypeEnd))
	if !errors.Is(err, ErrPlaybookNotFound) {
		t.Errorf("Save() error = %v, want ErrPlaybookNotFound", err)
	}
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := Record{ID: "p1", Doc: docWith(registry.TypeStart, registry.TypeEnd), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, rec); !errors.Is(err, ErrPlaybookExists) {
		t.Errorf("duplicate Create() error = %v, want ErrPlaybookExists", err)
	}

	got, ok, err := s.Get(ctx, "p1")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v", got, ok, err)
	}

	if err := s.Update(ctx, Record{ID: "missing"}); !errors.Is(err, ErrPlaybookNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrPlaybookNotFound", err)
	}

	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "p1"); !errors.Is(err, ErrPlaybookNotFound) {
		t.Errorf("second Delete() error = %v, want ErrPlaybookNotFound", err)
	}
}

func TestMemoryStore_ListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now()
	for i, id := range []string{"c", "a", "b"} {
		rec := Record{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"c", "a", "b"}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, rec.ID, want[i])
		}
	}
}
