package core

import "unicode/utf8"

// Content field names shared by Fields, validation and the HTTP layer.
const (
	FieldContent = "content"
	FieldTitle   = "title"
	FieldSummary = "summary"
	FieldMindset = "mindset"
)

// Rule bounds a single content field. Lengths are in runes, matching what
// a user counts when typing into a form.
type Rule struct {
	Field    string
	Min      int
	Max      int
	Required bool
}

// Schema is the ordered set of rules for one category.
type Schema []Rule

var schemas = map[Category]Schema{
	CategoryEpic: {
		{Field: FieldContent, Min: 1, Max: 280, Required: true},
	},
	CategoryCrypto: {
		{Field: FieldContent, Min: 1, Max: 280, Required: true},
	},
	CategoryAnalysis: {
		{Field: FieldSummary, Min: 10, Max: 1000, Required: true},
		{Field: FieldMindset, Min: 10, Max: 1000},
		{Field: FieldTitle, Min: 1, Max: 100},
	},
}

// SchemaFor returns the validation schema for a category.
func SchemaFor(c Category) Schema {
	return schemas[c]
}

// KnownField reports whether the schema has a rule for the named field.
func (s Schema) KnownField(name string) bool {
	for _, r := range s {
		if r.Field == name {
			return true
		}
	}
	return false
}

// ValidateCreate checks fields against the schema for a new note.
// All required fields must be present and every supplied field in bounds.
func (s Schema) ValidateCreate(fields Fields) error {
	verr := &ValidationError{}
	for _, r := range s {
		value, ok := fields[r.Field]
		if !ok || value == "" {
			if r.Required {
				verr.Add(r.Field, "is required")
			}
			continue
		}
		r.check(value, verr)
	}
	s.rejectUnknown(fields, verr)
	return verr.OrNil()
}

// ValidateUpdate checks only the supplied fields. A required field may be
// absent (it keeps its current value) but cannot be blanked out.
func (s Schema) ValidateUpdate(fields Fields) error {
	verr := &ValidationError{}
	for _, r := range s {
		value, ok := fields[r.Field]
		if !ok {
			continue
		}
		if value == "" && r.Required {
			verr.Add(r.Field, "is required")
			continue
		}
		if value == "" {
			continue // clearing an optional field is fine
		}
		r.check(value, verr)
	}
	s.rejectUnknown(fields, verr)
	return verr.OrNil()
}

func (r Rule) check(value string, verr *ValidationError) {
	n := utf8.RuneCountInString(value)
	if n < r.Min {
		verr.Addf(r.Field, "must be at least %d characters", r.Min)
	} else if n > r.Max {
		verr.Addf(r.Field, "must be at most %d characters", r.Max)
	}
}

func (s Schema) rejectUnknown(fields Fields, verr *ValidationError) {
	for name := range fields {
		if !s.KnownField(name) {
			verr.Add(name, "is not a field of this category")
		}
	}
}
