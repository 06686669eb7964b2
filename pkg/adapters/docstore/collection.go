package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aretw0/pxnote/pkg/core"
)

// Collection implements core.Collection for one category.
type Collection struct {
	manager  *Manager
	category core.Category
}

// Category returns the category this collection serves.
func (c *Collection) Category() core.Category { return c.category }

// List returns all notes of the category, newest first. created_at is
// RFC 3339 UTC, so the string ordering the index provides is the time
// ordering; rowid breaks ties by insertion order, newest first.
func (c *Collection) List(ctx context.Context) ([]core.Note, error) {
	db, err := c.manager.DB(ctx)
	if err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}

	rows, err := db.QueryContext(ctx,
		`SELECT payload FROM notes WHERE category = ? ORDER BY created_at DESC, rowid DESC`,
		string(c.category))
	if err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	notes := []core.Note{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, &core.PersistenceError{Op: "list", Err: err}
		}
		var n core.Note
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, &core.PersistenceError{Op: "list", Err: fmt.Errorf("corrupt payload: %w", err)}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}
	return notes, nil
}

// Upsert inserts the note when it carries no id, assigning a fresh one,
// and inserts-or-replaces by id within the category otherwise. Rows of
// other categories are untouchable from here. A replace keeps the stored
// creation timestamp: createdAt is written once and never mutated by
// edits, whatever the incoming payload claims.
func (c *Collection) Upsert(ctx context.Context, n core.Note) (core.Note, bool, error) {
	db, err := c.manager.DB(ctx)
	if err != nil {
		return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
	}

	created := false
	if n.ID == "" {
		n.ID = uuid.NewString()
		created = true
	}
	if n.CreatedAt == "" {
		n.CreatedAt = core.Now()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
	}
	defer tx.Rollback()

	if !created {
		var storedCreatedAt string
		err := tx.QueryRowContext(ctx,
			`SELECT created_at FROM notes WHERE id = ? AND category = ?`,
			n.ID, string(c.category)).Scan(&storedCreatedAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = true // id supplied but unknown: insert-or-replace inserts
		case err != nil:
			return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
		default:
			n.CreatedAt = storedCreatedAt
		}
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
	}

	// The key is (id, category): the same id in another category is a
	// different row, so a conflict can only ever replace within c.category.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO notes (id, category, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id, category) DO UPDATE SET payload = excluded.payload`,
		n.ID, string(c.category), string(payload), n.CreatedAt)
	if err != nil {
		return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return core.Note{}, false, &core.PersistenceError{Op: "upsert", Err: err}
	}
	return n, created, nil
}

// Delete removes the note by id, or core.ErrNotFound when nothing matched.
func (c *Collection) Delete(ctx context.Context, id string) error {
	db, err := c.manager.DB(ctx)
	if err != nil {
		return &core.PersistenceError{Op: "delete", Err: err}
	}

	res, err := db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND category = ?`,
		id, string(c.category))
	if err != nil {
		return &core.PersistenceError{Op: "delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &core.PersistenceError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

var _ core.Collection = (*Collection)(nil)
