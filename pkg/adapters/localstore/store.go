// Package localstore persists note collections as JSON files, one file per
// collection key, under a single data directory.
//
// It is the local counterpart of the document store: the same collections
// the remote backend keeps per category live here as `{key}.json` arrays.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/aretw0/pxnote/pkg/core"
)

// Hydration is the per-key load state. A key moves Unhydrated -> Hydrating
// -> Hydrated exactly once, after the first load attempt (success or
// failure). Saves issued before a key is hydrated are dropped, so an empty
// default can never overwrite data that has not been read yet.
type Hydration int

const (
	Unhydrated Hydration = iota
	Hydrating
	Hydrated
)

func (h Hydration) String() string {
	switch h {
	case Hydrating:
		return "hydrating"
	case Hydrated:
		return "hydrated"
	}
	return "unhydrated"
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Store implements core.Store over a directory of JSON files.
type Store struct {
	dir    string
	logger *slog.Logger

	mu            sync.RWMutex
	states        map[string]Hydration
	watcherActive bool
}

// Config holds the configuration for the local store.
type Config struct {
	Dir    string
	Logger *slog.Logger
}

// New creates a local store rooted at config.Dir, creating the directory
// when missing.
func New(config Config) (*Store, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("localstore: %w: data directory is required", core.ErrInvalidConfig)
	}
	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("localstore: failed to create data directory: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    config.Dir,
		logger: logger,
		states: make(map[string]Hydration),
	}, nil
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Hydrated reports whether the first load attempt for key has completed.
func (s *Store) Hydrated(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key] == Hydrated
}

// HydrationState returns the load state for key.
func (s *Store) HydrationState(key string) Hydration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key]
}

// Load reads the collection persisted under key.
//
// A missing file is an empty collection. So is an unreadable or malformed
// one: the failure is logged and the empty default preserved. Load never
// returns an error for bad data; the only failure mode is an invalid key.
func (s *Store) Load(ctx context.Context, key string) ([]core.Note, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.setState(key, Hydrating)
	defer s.setState(key, Hydrated)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []core.Note{}, nil
	}
	if err != nil {
		s.logger.Error("failed to read collection, using empty default", "key", key, "error", err)
		return []core.Note{}, nil
	}

	var notes []core.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Error("malformed collection, using empty default", "key", key, "error", err)
		return []core.Note{}, nil
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// Save persists the full collection under key.
//
// Saves before hydration are no-ops by contract: the caller holds a
// default it never loaded, and writing it would clobber whatever is on
// disk. The drop is logged at warn level.
func (s *Store) Save(ctx context.Context, key string, notes []core.Note) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if !s.Hydrated(key) {
		s.logger.Warn("save before hydration dropped", "key", key)
		return nil
	}

	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return &core.PersistenceError{Op: "save", Err: err}
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return &core.PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", &core.PersistenceError{Op: "load", Err: fmt.Errorf("invalid collection key: %q", key)}
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) setState(key string, h Hydration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The transition to Hydrated happens exactly once; later loads are
	// plain refreshes.
	if s.states[key] == Hydrated && h != Hydrated {
		return
	}
	s.states[key] = h
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

var _ core.Store = (*Store)(nil)
