package core

import (
	"time"
)

// Note is the central entity of the domain.
// One shape serves all three categories; fields that a category does not
// use stay empty and are omitted from the persisted JSON.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content,omitempty"`
	Title     string `json:"title,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Mindset   string `json:"mindset,omitempty"`
	WeekOf    string `json:"weekOf,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Fields carries the user-editable content fields of a note.
// Create consumes all supplied fields; Update replaces only the keys present.
type Fields map[string]string

// Category identifies one of the three note collections.
type Category string

const (
	CategoryEpic     Category = "epic"
	CategoryCrypto   Category = "crypto"
	CategoryAnalysis Category = "analysis"
)

// Categories lists all known categories in presentation order.
func Categories() []Category {
	return []Category{CategoryEpic, CategoryCrypto, CategoryAnalysis}
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryEpic, CategoryCrypto, CategoryAnalysis:
		return true
	}
	return false
}

// Key returns the storage key for the category's collection.
// The same key is used for the local vault file and as a namespace
// discriminator in the document store.
func (c Category) Key() string {
	return string(c) + "-notes"
}

// CreatedAtFormat is the timestamp layout for Note.CreatedAt.
// RFC 3339 with nanoseconds in UTC sorts lexicographically, so string
// comparison and time comparison agree.
const CreatedAtFormat = time.RFC3339Nano

// Now returns the current time formatted for Note.CreatedAt.
func Now() string {
	return time.Now().UTC().Format(CreatedAtFormat)
}

// CreatedTime parses a note's CreatedAt. Unparseable timestamps sort last.
func (n Note) CreatedTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, n.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Get returns the value of a content field by name.
func (n Note) Get(field string) string {
	switch field {
	case FieldContent:
		return n.Content
	case FieldTitle:
		return n.Title
	case FieldSummary:
		return n.Summary
	case FieldMindset:
		return n.Mindset
	}
	return ""
}

// Apply sets the supplied content fields on the note.
// ID, CreatedAt and WeekOf are not reachable through Fields.
func (n *Note) Apply(fields Fields) {
	for name, value := range fields {
		switch name {
		case FieldContent:
			n.Content = value
		case FieldTitle:
			n.Title = value
		case FieldSummary:
			n.Summary = value
		case FieldMindset:
			n.Mindset = value
		}
	}
}

// WeekOf renders the label attached to analysis notes at creation,
// derived from the Monday of t's week.
func WeekOf(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	monday := t.AddDate(0, 0, -offset)
	return "Week of " + monday.Format("January 2, 2006")
}
