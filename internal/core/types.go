// Package core provides the business logic for validated CSV import and
// export of admin-registered entity types. It has no HTTP or database
// dependencies and can be driven by any frontend.
package core

import (
	"strings"
	"time"
)

// FieldType represents the expected data type for an entity field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldNumber
	FieldDate
	FieldBool
	FieldEnum
)

// Field defines one column of an entity schema: how it appears in CSV
// headers, how raw text is coerced, and which constraints apply.
type Field struct {
	Name       string              // CSV header / field name (matched case-insensitively)
	Label      string              // Human label for verbose export headers
	Column     string              // Database column name (derived from Name when empty)
	Type       FieldType           // Expected data type
	Required   bool                // Column must exist and carry a value
	AllowEmpty bool                // If true, empty values are allowed even when Required
	EnumValues []string            // Valid values for FieldEnum
	Normalizer func(string) string // Optional cleanup applied before coercion
}

// CheckFunc is a cross-field constraint run after all field-level checks
// pass. It returns one FieldError per violated constraint.
type CheckFunc func(Entity) []FieldError

// Schema is the ordered description of an entity type: its fields, the
// unique key used for duplicate handling, and import defaults. The
// surrounding application constructs one Schema per entity type and
// registers it explicitly; nothing in this package holds ambient state.
type Schema struct {
	Entity    string      // Unique key: "customers"
	Label     string      // Display name: "Customers"
	Table     string      // Target database table
	Fields    []Field     // Declared column order
	UniqueKey []string    // Field names forming the natural key (may be empty)
	Encodings []string    // Candidate import encodings, tried in order
	Checks    []CheckFunc // Cross-field constraints
}

// FieldNames returns the schema's field names in declared order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the field with the given name, matched case-insensitively.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// Row is one CSV data row: its 1-based index (excluding the header) and
// the mapping from lower-cased header name to raw cell text. A malformed
// row carries Err instead of Values and is rejected, not fatal.
type Row struct {
	Line   int
	Values map[string]string
	Err    error
}

// RowSource yields rows one at a time in input order. The sequence is
// finite and single-pass; it is not restartable.
type RowSource interface {
	Next() (Row, bool)
}

// Entity holds one row's coerced values keyed by field name. Value types
// after coercion: string (text/enum), int64 (int), string in canonical
// numeric form (number), time.Time (date), bool. Empty optional fields
// map to nil.
type Entity map[string]any

// Outcome is the per-row result of validated import. Exactly one variant
// holds: a saved entity ID, or a non-empty error list.
type Outcome struct {
	Line     int
	EntityID string
	Errors   []FieldError
}

// Saved reports whether the row was persisted.
func (o Outcome) Saved() bool {
	return len(o.Errors) == 0
}

// SavedRow records one persisted row in the Import Report.
type SavedRow struct {
	Line     int    `json:"line"`
	EntityID string `json:"entity_id"`
}

// RejectedRow records one rejected row and all of its field errors.
type RejectedRow struct {
	Line   int          `json:"line"`
	Errors []FieldError `json:"errors"`
}

// Report aggregates all outcomes of one import call, preserving input
// order. Counts are derived from the lists so that
// Total == SavedCount + RejectedCount holds by construction.
type Report struct {
	Entity        string        `json:"entity"`
	Saved         []SavedRow    `json:"saved"`
	Rejected      []RejectedRow `json:"rejected"`
	RejectedTotal int           `json:"rejected_total"` // >= len(Rejected) when truncated
	Duration      time.Duration `json:"duration"`
}

// SavedCount returns the number of persisted rows.
func (r Report) SavedCount() int {
	return len(r.Saved)
}

// RejectedCount returns the number of rejected rows, including rows whose
// error detail was dropped past the error cap.
func (r Report) RejectedCount() int {
	return r.RejectedTotal
}

// Total returns the number of rows processed.
func (r Report) Total() int {
	return len(r.Saved) + r.RejectedTotal
}

// Truncated reports whether the rejected list was capped.
func (r Report) Truncated() bool {
	return r.RejectedTotal > len(r.Rejected)
}
