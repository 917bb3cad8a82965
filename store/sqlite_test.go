package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/navreach/playbook/registry"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(SQLiteStoreConfig{
		DSN: filepath.Join(t.TempDir(), "playbooks.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSQLiteStore_RequiresDSN(t *testing.T) {
	if _, err := NewSQLiteStore(SQLiteStoreConfig{}); err == nil {
		t.Error("NewSQLiteStore() error = nil, want DSN error")
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	doc := docWith(registry.TypeStart, "navigate", registry.TypeEnd)
	doc.Description = "Daily warmup"
	now := time.Now().UTC().Truncate(time.Millisecond)

	rec := Record{ID: "p1", Doc: doc, CreatedAt: now, UpdatedAt: now}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, ok, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Doc.Name != doc.Name || got.Doc.Description != doc.Description {
		t.Errorf("Get().Doc = %+v, want %+v", got.Doc, doc)
	}
	if len(got.Doc.Graph.Nodes) != 3 {
		t.Errorf("len(Graph.Nodes) = %v, want 3", len(got.Doc.Graph.Nodes))
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestSQLiteStore_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	rec := Record{ID: "p1", Doc: docWith(registry.TypeStart), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Create(ctx, rec); !errors.Is(err, ErrPlaybookExists) {
		t.Errorf("duplicate Create() error = %v, want ErrPlaybookExists", err)
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, ok, err := s.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestSQLiteStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	now := time.Now().UTC()
	rec := Record{ID: "p1", Doc: docWith(registry.TypeStart), CreatedAt: now, UpdatedAt: now}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	rec.Doc.Name = "Renamed"
	rec.UpdatedAt = now.Add(time.Minute)
	if err := s.Update(ctx, rec); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _, _ := s.Get(ctx, "p1")
	if got.Doc.Name != "Renamed" {
		t.Errorf("Doc.Name = %q, want %q", got.Doc.Name, "Renamed")
	}

	if err := s.Update(ctx, Record{ID: "ghost"}); !errors.Is(err, ErrPlaybookNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrPlaybookNotFound", err)
	}

	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "p1"); !errors.Is(err, ErrPlaybookNotFound) {
		t.Errorf("second Delete() error = %v, want ErrPlaybookNotFound", err)
	}
}

func TestSQLiteStore_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	now := time.Now().UTC()
	for _, id := range []string{"c", "a", "b"} {
		rec := Record{ID: id, Doc: docWith(registry.TypeStart), CreatedAt: now, UpdatedAt: now}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"c", "a", "b"}
	if len(recs) != len(want) {
		t.Fatalf("len(List()) = %v, want %v", len(recs), len(want))
	}
	for i, rec := range recs {
		if rec.ID != want[i] {
			t.Errorf("List()[%d].ID = %q, want %q", i, rec.ID, want[i])
		}
	}
}
