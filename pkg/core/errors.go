package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors.
var (
	// ErrNotFound signals that an update or delete targeted an id absent
	// from the collection. No state changed.
	ErrNotFound = errors.New("note not found")

	// ErrInvalidConfig signals missing or malformed startup configuration.
	// Fatal for the remote backend: fail before serving any request.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports per-field constraint violations.
// The operation was not attempted; nothing changed.
type ValidationError struct {
	// Fields maps a field name to its first violation message.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, seen := e.Fields[field]; !seen {
		e.Fields[field] = message
	}
}

// Addf is Add with formatting.
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// OrNil returns the error if any violation was recorded, else nil.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// PersistenceError wraps a storage failure (file write, database call).
// In-memory state was left unchanged; callers surface a generic notice and
// must not expose the underlying cause to end users.
type PersistenceError struct {
	Op  string // "load", "save", "upsert", "delete", "list"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a validation failure and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
