// Package pxnote wires the note-taking domain together: one repository per
// note category on top of a shared storage adapter.
//
//	vault, err := pxnote.Open("~/.pxnote")
//	epic, _ := vault.Notes(core.CategoryEpic)
//	note, err := epic.Create(ctx, core.Fields{"content": "Buy milk"})
package pxnote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/pxnote/pkg/adapters/localstore"
	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

// Version exposes the version of the application.
const Version = "0.3.0"

// Vault is a local note vault: three repositories sharing one store.
type Vault struct {
	store core.Store
	repos map[core.Category]*notes.Repository
}

// Open creates the vault rooted at dir, creating the directory when
// missing. Collections hydrate lazily, on first use.
func Open(dir string, opts ...Option) (*Vault, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	store := o.store
	if store == nil {
		s, err := localstore.New(localstore.Config{Dir: dir, Logger: logger})
		if err != nil {
			return nil, err
		}
		store = s
	}

	repos := make(map[core.Category]*notes.Repository, len(core.Categories()))
	for _, category := range core.Categories() {
		repos[category] = notes.NewRepository(category, store, logger)
	}

	return &Vault{store: store, repos: repos}, nil
}

// Notes returns the repository for a category.
func (v *Vault) Notes(category core.Category) (*notes.Repository, error) {
	repo, ok := v.repos[category]
	if !ok {
		return nil, fmt.Errorf("unknown category: %q", category)
	}
	return repo, nil
}

// Watch observes external changes to the vault's collections, when the
// underlying store supports it.
func (v *Vault) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := v.store.(core.Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}
