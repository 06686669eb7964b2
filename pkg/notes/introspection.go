package notes

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Hydrated bool   `json:"hydrated"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RepositoryState{
		Category: string(r.category),
		Count:    len(r.notes),
		Hydrated: r.store.Hydrated(r.category.Key()),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

// RemoteState exposes internal state for observability.
type RemoteState struct {
	Category      string `json:"category"`
	SnapshotCount int    `json:"snapshot_count"`
}

// State implements introspection.Introspectable.
func (r *Remote) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RemoteState{
		Category:      string(r.category),
		SnapshotCount: len(r.snapshot),
	}
}

// ComponentType implements introspection.Component.
func (r *Remote) ComponentType() string {
	return "remote-repository"
}

var (
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
	_ introspection.Introspectable = (*Remote)(nil)
	_ introspection.Component      = (*Remote)(nil)
)
