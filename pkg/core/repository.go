package core

import "context"

// Store persists whole note collections under string keys.
// It is the local-vault contract: the repository hands over the full
// collection on every mutation and the store decides how to write it.
type Store interface {
	// Load returns the collection persisted under key. A missing,
	// unreadable or malformed collection is an empty one: the failure is
	// logged and the empty default preserved, never raised to the caller.
	Load(ctx context.Context, key string) ([]Note, error)

	// Save persists the full collection under key. Implementations must
	// gate on hydration: a Save issued before the first Load of key has
	// completed is a no-op, so an empty default can never clobber data
	// that simply has not been read yet.
	Save(ctx context.Context, key string, notes []Note) error

	// Hydrated reports whether the first Load attempt for key has
	// completed (successfully or not).
	Hydrated(key string) bool
}

// Collection is the remote contract: one document collection per category,
// each operation a single round trip against the backend.
type Collection interface {
	// List returns all notes, sorted descending by CreatedAt.
	List(ctx context.Context) ([]Note, error)

	// Upsert inserts the note when its ID is empty (assigning a fresh
	// one) and inserts-or-replaces by ID otherwise. It returns the
	// stored note and whether a new record was created.
	Upsert(ctx context.Context, n Note) (Note, bool, error)

	// Delete removes the note with the given id, or ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// EventType classifies a change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event reports an externally observed change to a stored collection.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle event contract).
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}

// Watchable is implemented by stores that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever a collection whose key matches the
	// glob pattern changes outside this process. The channel closes when
	// ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
