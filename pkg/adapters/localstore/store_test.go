package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pxnote/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.TODO()
	s := newTestStore(t)

	notes := []core.Note{
		{ID: "1", Content: "first", CreatedAt: "2024-01-02T00:00:00Z"},
		{ID: "2", Content: "second", CreatedAt: "2024-01-01T00:00:00Z"},
	}

	// Hydrate, then save.
	if _, err := s.Load(ctx, "epic-notes"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Save(ctx, "epic-notes", notes); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load(ctx, "epic-notes")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0].ID != "1" || loaded[1].Content != "second" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.Load(context.TODO(), "crypto-notes")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", loaded)
	}
	if !s.Hydrated("crypto-notes") {
		t.Error("first load attempt must hydrate the key")
	}
}

func TestStore_MalformedDataDegradesToEmpty(t *testing.T) {
	ctx := context.TODO()
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "epic-notes.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load(ctx, "epic-notes")
	if err != nil {
		t.Fatalf("malformed data must not error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty default, got %+v", loaded)
	}
	if !s.Hydrated("epic-notes") {
		t.Error("a failed load attempt still completes hydration")
	}

	// The corrupt file is left alone until a post-hydration save.
	if data, _ := os.ReadFile(path); string(data) != "{not json" {
		t.Errorf("load must not rewrite the file, got %q", data)
	}
}

func TestStore_HydrationGate(t *testing.T) {
	ctx := context.TODO()
	s := newTestStore(t)

	// Seed a file the store has never loaded.
	path := filepath.Join(s.Dir(), "analysis-notes.json")
	seed := `[{"id":"keep","summary":"precious data","createdAt":"2024-01-01T00:00:00Z"}]`
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	// A save issued before hydration must be a silent no-op.
	if err := s.Save(ctx, "analysis-notes", []core.Note{}); err != nil {
		t.Fatalf("pre-hydration save must not error: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != seed {
		t.Fatalf("pre-hydration save clobbered the file: %q", data)
	}

	// After hydration the same save goes through.
	if _, err := s.Load(ctx, "analysis-notes"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "analysis-notes", []core.Note{}); err != nil {
		t.Fatalf("post-hydration save failed: %v", err)
	}
	loaded, _ := s.Load(ctx, "analysis-notes")
	if len(loaded) != 0 {
		t.Errorf("expected emptied collection, got %+v", loaded)
	}
}

func TestStore_HydrationStateMachine(t *testing.T) {
	s := newTestStore(t)

	if got := s.HydrationState("epic-notes"); got != Unhydrated {
		t.Errorf("fresh key: got %v", got)
	}
	if _, err := s.Load(context.TODO(), "epic-notes"); err != nil {
		t.Fatal(err)
	}
	if got := s.HydrationState("epic-notes"); got != Hydrated {
		t.Errorf("after load: got %v", got)
	}
	if len(s.HydratedKeys()) != 1 {
		t.Errorf("expected one hydrated key, got %v", s.HydratedKeys())
	}
}

func TestStore_InvalidKey(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Load(context.TODO(), "../escape"); err == nil {
		t.Error("expected error for traversal key")
	}
	if err := s.Save(context.TODO(), "a/b", nil); err == nil {
		t.Error("expected error for slash key")
	}
}

func TestStore_SaveWritesAtomically(t *testing.T) {
	ctx := context.TODO()
	s := newTestStore(t)

	if _, err := s.Load(ctx, "epic-notes"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "epic-notes", []core.Note{{ID: "1", CreatedAt: "2024-01-01T00:00:00Z"}}); err != nil {
		t.Fatal(err)
	}

	// No temp file debris left behind.
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "epic-notes.json" {
			t.Errorf("unexpected leftover file: %s", e.Name())
		}
	}
}
