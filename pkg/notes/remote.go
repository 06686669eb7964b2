package notes

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/pxnote/pkg/core"
)

// Remote is the document-store variant of the repository.
//
// Reconciliation is re-fetch-after-mutation: every successful create,
// update or delete round trip is followed by a full List against the
// backend, so callers always observe the authoritative server state. This
// is the only supported mode.
//
// Known limitation: writes are last-write-wins. Two in-flight saves of the
// same note are not reconciled, and a slow save that completes after a
// newer one may overwrite it. Acceptable for a single-user tool.
type Remote struct {
	category core.Category
	coll     core.Collection
	logger   *slog.Logger

	mu       sync.RWMutex
	snapshot []core.Note
}

// NewRemote creates a remote repository for one category.
func NewRemote(category core.Category, coll core.Collection, logger *slog.Logger) *Remote {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remote{
		category: category,
		coll:     coll,
		logger:   logger,
	}
}

// Category returns the category this repository owns.
func (r *Remote) Category() core.Category { return r.category }

// List fetches the collection from the backend, sorted descending by
// CreatedAt.
func (r *Remote) List(ctx context.Context) ([]core.Note, error) {
	all, err := r.coll.List(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.snapshot = all
	r.mu.Unlock()
	return all, nil
}

// Snapshot returns the collection as of the last successful round trip,
// without hitting the backend. Meant for status output, not for rendering
// note lists.
func (r *Remote) Snapshot() []core.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Note, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

// Create validates fields and inserts a new note. The backend assigns the
// id when the collection owns id generation.
func (r *Remote) Create(ctx context.Context, fields core.Fields) (core.Note, error) {
	if err := core.SchemaFor(r.category).ValidateCreate(fields); err != nil {
		return core.Note{}, err
	}

	n := NewNote(r.category, fields)
	stored, _, err := r.coll.Upsert(ctx, n)
	if err != nil {
		return core.Note{}, err
	}
	r.refetch(ctx, "create")
	return stored, nil
}

// Update upserts the supplied fields onto the existing note. The note must
// exist: a remote edit of an unknown id is a NotFound, not a blind insert.
func (r *Remote) Update(ctx context.Context, id string, fields core.Fields) (core.Note, error) {
	if err := core.SchemaFor(r.category).ValidateUpdate(fields); err != nil {
		return core.Note{}, err
	}

	existing, err := r.find(ctx, id)
	if err != nil {
		return core.Note{}, err
	}

	existing.Apply(fields)
	stored, _, err := r.coll.Upsert(ctx, existing)
	if err != nil {
		return core.Note{}, err
	}
	r.refetch(ctx, "update")
	return stored, nil
}

// Upsert applies the API write semantics: an empty id inserts, a supplied
// id inserts-or-replaces. The HTTP layer routes POST bodies here; Update
// stays strict (unknown id is NotFound) for interactive edits, where a
// silent insert would mask a stale screen.
func (r *Remote) Upsert(ctx context.Context, id string, fields core.Fields) (core.Note, bool, error) {
	schema := core.SchemaFor(r.category)

	if id == "" {
		n, err := r.Create(ctx, fields)
		return n, true, err
	}

	existing, err := r.find(ctx, id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		// Insert-or-replace inserts unknown ids, keeping the one supplied.
		if err := schema.ValidateCreate(fields); err != nil {
			return core.Note{}, false, err
		}
		n := NewNote(r.category, fields)
		n.ID = id
		stored, created, err := r.coll.Upsert(ctx, n)
		if err != nil {
			return core.Note{}, false, err
		}
		r.refetch(ctx, "upsert")
		return stored, created, nil
	case err != nil:
		return core.Note{}, false, err
	}

	if err := schema.ValidateUpdate(fields); err != nil {
		return core.Note{}, false, err
	}
	existing.Apply(fields)
	stored, _, err := r.coll.Upsert(ctx, existing)
	if err != nil {
		return core.Note{}, false, err
	}
	r.refetch(ctx, "upsert")
	return stored, false, nil
}

// Delete removes the note by id.
func (r *Remote) Delete(ctx context.Context, id string) error {
	if err := r.coll.Delete(ctx, id); err != nil {
		return err
	}
	r.refetch(ctx, "delete")
	return nil
}

func (r *Remote) find(ctx context.Context, id string) (core.Note, error) {
	all, err := r.coll.List(ctx)
	if err != nil {
		return core.Note{}, err
	}
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, core.ErrNotFound
}

// refetch re-reads the authoritative collection after a mutation and
// replaces the snapshot with it. Mutations succeed even when the refetch
// fails; the stale snapshot is corrected by the next List.
func (r *Remote) refetch(ctx context.Context, op string) {
	all, err := r.coll.List(ctx)
	if err != nil {
		r.logger.Warn("post-mutation refetch failed", "category", r.category, "op", op, "error", err)
		return
	}
	r.mu.Lock()
	r.snapshot = all
	r.mu.Unlock()
	r.logger.Debug("collection reconciled", "category", r.category, "op", op, "count", len(all))
}

var _ Notebook = (*Remote)(nil)
