// Package notes implements the per-category note repositories.
//
// A repository owns the in-memory collection for exactly one category and
// mediates all persistence for it, either through a core.Store (local
// vault) or a core.Collection (document store).
package notes

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/pxnote/pkg/core"
)

// Notebook is the operation set shared by both repository variants.
type Notebook interface {
	List(ctx context.Context) ([]core.Note, error)
	Create(ctx context.Context, fields core.Fields) (core.Note, error)
	Update(ctx context.Context, id string, fields core.Fields) (core.Note, error)
	Delete(ctx context.Context, id string) error
}

// Repository is the local-vault variant, backed by a core.Store.
type Repository struct {
	category core.Category
	store    core.Store
	logger   *slog.Logger

	mu    sync.Mutex
	notes []core.Note
}

// NewRepository creates a repository for one category on top of a store.
func NewRepository(category core.Category, store core.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		category: category,
		store:    store,
		logger:   logger,
	}
}

// Category returns the category this repository owns.
func (r *Repository) Category() core.Category { return r.category }

// Hydrated reports whether the backing store has loaded this collection.
func (r *Repository) Hydrated() bool {
	return r.store.Hydrated(r.category.Key())
}

// Load hydrates the in-memory collection from the store. Idempotent; the
// first call performs the read, later calls refresh from the store.
func (r *Repository) Load(ctx context.Context) error {
	loaded, err := r.store.Load(ctx, r.category.Key())
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.notes = loaded
	r.mu.Unlock()
	return nil
}

// List returns the collection sorted descending by CreatedAt.
// The sort is recomputed on every call; ties keep their relative order.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	if !r.Hydrated() {
		if err := r.Load(ctx); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Note, len(r.notes))
	copy(out, r.notes)
	sortByRecency(out)
	return out, nil
}

// Create validates fields, constructs a note with a fresh id and an
// immutable creation timestamp, prepends it and persists the collection.
func (r *Repository) Create(ctx context.Context, fields core.Fields) (core.Note, error) {
	if err := core.SchemaFor(r.category).ValidateCreate(fields); err != nil {
		return core.Note{}, err
	}
	if !r.Hydrated() {
		if err := r.Load(ctx); err != nil {
			return core.Note{}, err
		}
	}

	n := NewNote(r.category, fields)

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]core.Note, 0, len(r.notes)+1)
	next = append(next, n)
	next = append(next, r.notes...)

	if err := r.store.Save(ctx, r.category.Key(), next); err != nil {
		return core.Note{}, err
	}
	r.notes = next
	r.logger.Debug("note created", "category", r.category, "id", n.ID)
	return n, nil
}

// Update replaces only the supplied fields of the note with the given id.
// ID and CreatedAt are never touched. Returns core.ErrNotFound when the id
// is absent; the collection is unchanged in that case.
func (r *Repository) Update(ctx context.Context, id string, fields core.Fields) (core.Note, error) {
	if err := core.SchemaFor(r.category).ValidateUpdate(fields); err != nil {
		return core.Note{}, err
	}
	if !r.Hydrated() {
		if err := r.Load(ctx); err != nil {
			return core.Note{}, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.notes {
		if r.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Note{}, core.ErrNotFound
	}

	next := make([]core.Note, len(r.notes))
	copy(next, r.notes)
	updated := next[idx]
	updated.Apply(fields)
	next[idx] = updated

	if err := r.store.Save(ctx, r.category.Key(), next); err != nil {
		return core.Note{}, err
	}
	r.notes = next
	r.logger.Debug("note updated", "category", r.category, "id", id)
	return updated, nil
}

// Delete removes the note with the given id and persists the collection.
// Returns core.ErrNotFound when no note matched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !r.Hydrated() {
		if err := r.Load(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]core.Note, 0, len(r.notes))
	found := false
	for _, n := range r.notes {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	if !found {
		return core.ErrNotFound
	}

	if err := r.store.Save(ctx, r.category.Key(), next); err != nil {
		return err
	}
	r.notes = next
	r.logger.Debug("note deleted", "category", r.category, "id", id)
	return nil
}

// NewNote builds a note for the category from validated fields.
// Analysis notes get their weekOf label here, derived from the Monday of
// the current week.
func NewNote(category core.Category, fields core.Fields) core.Note {
	n := core.Note{
		ID:        uuid.NewString(),
		CreatedAt: core.Now(),
	}
	n.Apply(fields)
	if category == core.CategoryAnalysis {
		now, _ := n.CreatedTime()
		n.WeekOf = core.WeekOf(now)
	}
	return n
}

// sortByRecency sorts notes descending by CreatedAt, stable for ties.
// Notes with unparseable timestamps sort last.
func sortByRecency(notes []core.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		ti, oki := notes[i].CreatedTime()
		tj, okj := notes[j].CreatedTime()
		if oki != okj {
			return oki
		}
		return ti.After(tj)
	})
}

var _ Notebook = (*Repository)(nil)
