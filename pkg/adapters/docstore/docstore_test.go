package docstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pxnote/pkg/adapters/docstore"
	"github.com/aretw0/pxnote/pkg/core"
)

func newTestManager(t *testing.T) *docstore.Manager {
	t.Helper()
	m, err := docstore.NewManager(filepath.Join(t.TempDir(), "pxnote.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewManager_RequiresDSN(t *testing.T) {
	_, err := docstore.NewManager("", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestManager_IdempotentInit(t *testing.T) {
	ctx := context.TODO()
	m := newTestManager(t)

	db1, err := m.DB(ctx)
	require.NoError(t, err)
	db2, err := m.DB(ctx)
	require.NoError(t, err)
	assert.Same(t, db1, db2, "DB must return the same handle every time")
}

func TestCollection_UpsertInsertAndReplace(t *testing.T) {
	ctx := context.TODO()
	coll := newTestManager(t).Collection(core.CategoryEpic)

	// No id: insert with a fresh one.
	stored, created, err := coll.Upsert(ctx, core.Note{Content: "first"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, stored.ID)
	assert.NotEmpty(t, stored.CreatedAt)

	// Same id: replace, createdAt preserved even if the payload lies.
	edit := stored
	edit.Content = "revised"
	edit.CreatedAt = "1999-01-01T00:00:00Z"
	replaced, created, err := coll.Upsert(ctx, edit)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.CreatedAt, replaced.CreatedAt, "edits must not move createdAt")

	all, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "revised", all[0].Content)
	assert.Equal(t, stored.CreatedAt, all[0].CreatedAt)

	// Unknown id supplied: upsert semantics insert it.
	ghost, created, err := coll.Upsert(ctx, core.Note{ID: "imported-1", Content: "imported"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "imported-1", ghost.ID)
}

func TestCollection_ListSortedDescending(t *testing.T) {
	ctx := context.TODO()
	coll := newTestManager(t).Collection(core.CategoryCrypto)

	base := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{time.Hour, 0, 30 * time.Minute} {
		_, _, err := coll.Upsert(ctx, core.Note{
			Content:   strings.Repeat("x", i+1),
			CreatedAt: base.Add(offset).Format(core.CreatedAtFormat),
		})
		require.NoError(t, err)
	}

	all, err := coll.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		prev, _ := all[i-1].CreatedTime()
		cur, _ := all[i].CreatedTime()
		assert.False(t, cur.After(prev), "list must be sorted descending")
	}
}

func TestCollection_SameIDAcrossCategories(t *testing.T) {
	ctx := context.TODO()
	m := newTestManager(t)
	epic := m.Collection(core.CategoryEpic)
	crypto := m.Collection(core.CategoryCrypto)

	stored, _, err := epic.Upsert(ctx, core.Note{Content: "quarterly goals"})
	require.NoError(t, err)

	// Reusing the id in another category is an insert there; the epic row
	// must survive untouched.
	other, created, err := crypto.Upsert(ctx, core.Note{ID: stored.ID, Content: "exchange fees"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, stored.ID, other.ID)

	epicNotes, err := epic.List(ctx)
	require.NoError(t, err)
	require.Len(t, epicNotes, 1)
	assert.Equal(t, "quarterly goals", epicNotes[0].Content)

	cryptoNotes, err := crypto.List(ctx)
	require.NoError(t, err)
	require.Len(t, cryptoNotes, 1)
	assert.Equal(t, "exchange fees", cryptoNotes[0].Content)

	// And an edit through one category still only touches its own row.
	edit := other
	edit.Content = "exchange fees, revised"
	_, created, err = crypto.Upsert(ctx, edit)
	require.NoError(t, err)
	assert.False(t, created)

	epicNotes, err = epic.List(ctx)
	require.NoError(t, err)
	require.Len(t, epicNotes, 1)
	assert.Equal(t, "quarterly goals", epicNotes[0].Content)
}

func TestCollection_CategoriesAreIsolated(t *testing.T) {
	ctx := context.TODO()
	m := newTestManager(t)
	epic := m.Collection(core.CategoryEpic)
	crypto := m.Collection(core.CategoryCrypto)

	stored, _, err := epic.Upsert(ctx, core.Note{Content: "epic only"})
	require.NoError(t, err)

	cryptoNotes, err := crypto.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cryptoNotes)

	// A delete through the wrong category must not reach across.
	err = crypto.Delete(ctx, stored.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	epicNotes, err := epic.List(ctx)
	require.NoError(t, err)
	assert.Len(t, epicNotes, 1)
}

func TestCollection_DeleteNotFound(t *testing.T) {
	ctx := context.TODO()
	coll := newTestManager(t).Collection(core.CategoryEpic)

	err := coll.Delete(ctx, "never-existed")
	assert.ErrorIs(t, err, core.ErrNotFound)

	stored, _, err := coll.Upsert(ctx, core.Note{Content: "to delete"})
	require.NoError(t, err)
	require.NoError(t, coll.Delete(ctx, stored.ID))

	var perr *core.PersistenceError
	if errors.As(coll.Delete(ctx, stored.ID), &perr) {
		t.Errorf("second delete should be NotFound, not a persistence error")
	}

	all, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestManager_ConcurrentFirstUseAndProbes(t *testing.T) {
	ctx := context.TODO()
	m := newTestManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.State()
			_, _ = m.DB(ctx)
			_ = m.State()
		}()
	}
	wg.Wait()

	state := m.State().(docstore.ManagerState)
	assert.True(t, state.Opened)
	assert.False(t, state.Failed)
}

func TestManager_StateHidesDSN(t *testing.T) {
	m, err := docstore.NewManager("/secret/path/with/credentials.db", nil)
	require.NoError(t, err)

	state := m.State().(docstore.ManagerState)
	assert.False(t, state.Opened)
	assert.False(t, state.Failed)
}
