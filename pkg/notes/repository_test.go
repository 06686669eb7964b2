package notes_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

// MockStore implements core.Store in memory and counts writes, so tests
// can assert that rejected operations never reach persistence.
type MockStore struct {
	data     map[string][]core.Note
	hydrated map[string]bool
	saves    int
	failSave error
}

func NewMockStore() *MockStore {
	return &MockStore{
		data:     make(map[string][]core.Note),
		hydrated: make(map[string]bool),
	}
}

func (m *MockStore) Load(ctx context.Context, key string) ([]core.Note, error) {
	m.hydrated[key] = true
	out := make([]core.Note, len(m.data[key]))
	copy(out, m.data[key])
	return out, nil
}

func (m *MockStore) Save(ctx context.Context, key string, ns []core.Note) error {
	if !m.hydrated[key] {
		return nil // hydration gate: silently dropped
	}
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	stored := make([]core.Note, len(ns))
	copy(stored, ns)
	m.data[key] = stored
	return nil
}

func (m *MockStore) Hydrated(key string) bool { return m.hydrated[key] }

func TestRepository_CreateListUpdateDelete(t *testing.T) {
	ctx := context.TODO()
	store := NewMockStore()
	repo := notes.NewRepository(core.CategoryEpic, store, nil)

	// Create
	created, err := repo.Create(ctx, core.Fields{"content": "Buy milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" || created.CreatedAt == "" {
		t.Fatalf("note missing identity: %+v", created)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Content != "Buy milk" {
		t.Fatalf("unexpected list: %+v", listed)
	}

	// Update preserves id and createdAt
	updated, err := repo.Update(ctx, created.ID, core.Fields{"content": "Buy oat milk"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != created.ID || updated.CreatedAt != created.CreatedAt {
		t.Errorf("Update changed identity: %+v vs %+v", updated, created)
	}
	if updated.Content != "Buy oat milk" {
		t.Errorf("content not updated: %q", updated.Content)
	}

	// Delete empties the collection
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	listed, _ = repo.List(ctx)
	if len(listed) != 0 {
		t.Errorf("expected empty collection, got %+v", listed)
	}
}

func TestRepository_CreateIncrementsAndIDsUnique(t *testing.T) {
	ctx := context.TODO()
	repo := notes.NewRepository(core.CategoryCrypto, NewMockStore(), nil)

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		n, err := repo.Create(ctx, core.Fields{"content": fmt.Sprintf("note %d", i)})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate id %s", n.ID)
		}
		seen[n.ID] = true

		listed, _ := repo.List(ctx)
		if len(listed) != i+1 {
			t.Fatalf("expected %d notes, got %d", i+1, len(listed))
		}
	}
}

func TestRepository_ListSortedByRecency(t *testing.T) {
	ctx := context.TODO()
	store := NewMockStore()

	// Seed out of order, including a tie, straight into the store.
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stamp := func(d time.Duration) string { return base.Add(d).Format(core.CreatedAtFormat) }
	store.data[core.CategoryEpic.Key()] = []core.Note{
		{ID: "b", Content: "middle", CreatedAt: stamp(time.Minute)},
		{ID: "tie-1", Content: "first tie", CreatedAt: stamp(2 * time.Minute)},
		{ID: "a", Content: "oldest", CreatedAt: stamp(0)},
		{ID: "tie-2", Content: "second tie", CreatedAt: stamp(2 * time.Minute)},
	}

	repo := notes.NewRepository(core.CategoryEpic, store, nil)
	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	gotIDs := make([]string, len(listed))
	for i, n := range listed {
		gotIDs[i] = n.ID
	}
	want := []string{"tie-1", "tie-2", "b", "a"}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", gotIDs, want)
		}
	}
}

func TestRepository_ValidationSkipsPersistence(t *testing.T) {
	ctx := context.TODO()
	store := NewMockStore()
	repo := notes.NewRepository(core.CategoryEpic, store, nil)

	_, err := repo.Create(ctx, core.Fields{"content": ""})
	if _, ok := core.IsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.saves != 0 {
		t.Errorf("validation failure must not persist, saw %d saves", store.saves)
	}

	listed, _ := repo.List(ctx)
	if len(listed) != 0 {
		t.Errorf("collection should remain empty, got %+v", listed)
	}
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.TODO()
	repo := notes.NewRepository(core.CategoryEpic, NewMockStore(), nil)

	if _, err := repo.Create(ctx, core.Fields{"content": "keep me"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := repo.Update(ctx, "missing", core.Fields{"content": "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}

	// The miss must not disturb the collection.
	listed, _ := repo.List(ctx)
	if len(listed) != 1 {
		t.Errorf("collection disturbed by not-found ops: %+v", listed)
	}
}

func TestRepository_FailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.TODO()
	store := NewMockStore()
	repo := notes.NewRepository(core.CategoryEpic, store, nil)

	first, err := repo.Create(ctx, core.Fields{"content": "survivor"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store.failSave = &core.PersistenceError{Op: "save", Err: errors.New("disk full")}

	if _, err := repo.Create(ctx, core.Fields{"content": "doomed"}); err == nil {
		t.Fatal("expected save failure to propagate")
	}
	if err := repo.Delete(ctx, first.ID); err == nil {
		t.Fatal("expected save failure to propagate from delete")
	}

	store.failSave = nil
	listed, _ := repo.List(ctx)
	if len(listed) != 1 || listed[0].ID != first.ID {
		t.Errorf("failed persistence must not change memory: %+v", listed)
	}
}

func TestRepository_AnalysisWeekOf(t *testing.T) {
	ctx := context.TODO()
	repo := notes.NewRepository(core.CategoryAnalysis, NewMockStore(), nil)

	n, err := repo.Create(ctx, core.Fields{"summary": "a week of steady progress"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n.WeekOf == "" {
		t.Error("analysis note should carry a weekOf label")
	}

	// Edits never recompute the label or the timestamp.
	updated, err := repo.Update(ctx, n.ID, core.Fields{"summary": "revised view of the week"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.WeekOf != n.WeekOf || updated.CreatedAt != n.CreatedAt {
		t.Errorf("update touched derived fields: %+v vs %+v", updated, n)
	}
}
