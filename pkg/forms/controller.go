// Package forms implements the state machine behind the note screens.
//
// A Controller binds validated user input to repository operations and
// tracks the transient UI state around them: which note is selected for
// edit, whether a dialog is open, which delete is awaiting confirmation.
// It is UI-toolkit agnostic and, like the screens it backs, not safe for
// concurrent use: one controller per screen, driven from one goroutine.
package forms

import (
	"context"
	"errors"

	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

// ErrNothingPending is returned by ConfirmDelete when no delete was armed.
var ErrNothingPending = errors.New("no delete pending confirmation")

// ErrNoSelection is returned by SubmitEdit when no note is selected.
var ErrNoSelection = errors.New("no note selected for edit")

// Controller reconciles form input with one category's repository.
type Controller struct {
	category core.Category
	notebook notes.Notebook

	dialogOpen  bool
	editingID   string
	pendingID   string
	fieldErrors map[string]string
}

// NewController creates a controller for one category.
func NewController(category core.Category, notebook notes.Notebook) *Controller {
	return &Controller{
		category: category,
		notebook: notebook,
	}
}

// Loading reports whether the backing store is still hydrating. Callers
// must render a loading placeholder while true, not the empty-state
// message, which would flash "no notes" over data that simply has not
// loaded yet.
func (c *Controller) Loading() bool {
	type hydrated interface{ Hydrated() bool }
	if h, ok := c.notebook.(hydrated); ok {
		return !h.Hydrated()
	}
	return false
}

// List returns the notes to render, newest first.
func (c *Controller) List(ctx context.Context) ([]core.Note, error) {
	return c.notebook.List(ctx)
}

// DialogOpen reports whether a create/edit dialog is showing.
func (c *Controller) DialogOpen() bool { return c.dialogOpen }

// EditingID returns the id of the note selected for edit, or "".
func (c *Controller) EditingID() string { return c.editingID }

// PendingDeleteID returns the id armed for delete confirmation, or "".
func (c *Controller) PendingDeleteID() string { return c.pendingID }

// FieldErrors returns the per-field messages from the last rejected
// submission, or nil after a successful or cancelled operation.
func (c *Controller) FieldErrors() map[string]string { return c.fieldErrors }

// OpenCreate opens the create dialog.
func (c *Controller) OpenCreate() {
	c.dialogOpen = true
	c.editingID = ""
	c.fieldErrors = nil
}

// BeginEdit selects a note and opens the edit dialog.
func (c *Controller) BeginEdit(id string) {
	c.dialogOpen = true
	c.editingID = id
	c.fieldErrors = nil
}

// Cancel closes any dialog and disarms any pending delete.
func (c *Controller) Cancel() {
	c.reset()
}

// SubmitCreate validates and creates. On validation failure the dialog
// stays open, the per-field messages are recorded, and the repository is
// not called. On success all transient state resets.
func (c *Controller) SubmitCreate(ctx context.Context, fields core.Fields) (core.Note, error) {
	n, err := c.notebook.Create(ctx, fields)
	if err != nil {
		c.recordFailure(err)
		return core.Note{}, err
	}
	c.reset()
	return n, nil
}

// SubmitEdit validates and updates the selected note.
func (c *Controller) SubmitEdit(ctx context.Context, fields core.Fields) (core.Note, error) {
	if c.editingID == "" {
		return core.Note{}, ErrNoSelection
	}
	n, err := c.notebook.Update(ctx, c.editingID, fields)
	if err != nil {
		c.recordFailure(err)
		return core.Note{}, err
	}
	c.reset()
	return n, nil
}

// RequestDelete arms the confirmation gate for a note. Deletion is
// destructive and irreversible, so it always takes two steps: arm, then
// confirm.
func (c *Controller) RequestDelete(id string) {
	c.pendingID = id
}

// ConfirmDelete performs the armed delete.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.pendingID == "" {
		return ErrNothingPending
	}
	if err := c.notebook.Delete(ctx, c.pendingID); err != nil {
		// The gate stays armed only for transient failures; a vanished
		// note has nothing left to confirm.
		if errors.Is(err, core.ErrNotFound) {
			c.pendingID = ""
		}
		return err
	}
	c.reset()
	return nil
}

func (c *Controller) recordFailure(err error) {
	if verr, ok := core.IsValidation(err); ok {
		c.fieldErrors = verr.Fields
		return
	}
	// Persistence failures leave the form as-is so the user can retry.
	c.fieldErrors = nil
}

func (c *Controller) reset() {
	c.dialogOpen = false
	c.editingID = ""
	c.pendingID = ""
	c.fieldErrors = nil
}
