package localstore

import (
	"sort"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Dir           string            `json:"dir"`
	Keys          map[string]string `json:"keys"` // key -> hydration state
	WatcherActive bool              `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[string]string, len(s.states))
	for key, state := range s.states {
		keys[key] = state.String()
	}

	return StoreState{
		Dir:           s.dir,
		Keys:          keys,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "localstore"
}

// HydratedKeys returns the keys whose first load has completed, sorted.
func (s *Store) HydratedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for key, state := range s.states {
		if state == Hydrated {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
