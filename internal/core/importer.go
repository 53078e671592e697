package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxErrorRows caps how many rejected rows keep full error detail.
var DefaultMaxErrorRows = 1000

// Saver persists one validated entity. Implementations decide how a
// unique-key collision with an existing record is resolved (update or
// skip); a returned error rejects the row.
type Saver interface {
	Save(ctx context.Context, schema *Schema, entity Entity) (string, error)
}

// Importer runs validated row-by-row import: for each row it builds a
// validation object, runs all checks, and either persists the entity or
// records the row's errors. Rows are processed strictly sequentially in
// input order; one row's failure never rolls back another row's success.
type Importer struct {
	saver Saver

	// MaxErrorRows bounds the rejected detail list. Rows rejected past
	// the cap still count toward the report totals.
	MaxErrorRows int

	// LastComerWins controls in-file duplicate resolution on the
	// schema's unique key. Default (false): the first occurrence is
	// kept and later duplicates are rejected. True: every occurrence is
	// saved, so the last one ends up in the database via upsert.
	LastComerWins bool
}

// NewImporter creates an Importer that persists through the given Saver.
func NewImporter(saver Saver) *Importer {
	return &Importer{
		saver:        saver,
		MaxErrorRows: DefaultMaxErrorRows,
	}
}

// Run processes all rows from the source and returns the Import Report.
// Per-row failures (shape mismatches, validation errors, save errors) are
// captured into the report; only a context cancellation aborts the call.
func (imp *Importer) Run(ctx context.Context, rows RowSource, schema *Schema) (Report, error) {
	start := time.Now()

	var outcomes []Outcome
	seen := make(map[string]int) // unique key -> first line

	for {
		row, ok := rows.Next()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("import cancelled at row %d: %w", row.Line, err)
		}

		outcomes = append(outcomes, imp.processRow(ctx, row, schema, seen))
	}

	report := BuildReport(schema.Entity, outcomes, imp.MaxErrorRows)
	report.Duration = time.Since(start)
	return report, nil
}

// processRow validates and persists a single row, returning its outcome.
func (imp *Importer) processRow(ctx context.Context, row Row, schema *Schema, seen map[string]int) Outcome {
	binding := Bind(row, schema)
	if !binding.Valid() {
		return Outcome{Line: row.Line, Errors: binding.Errors}
	}

	if key, ok := uniqueKeyOf(binding.Entity, schema); ok {
		if first, dup := seen[key]; dup && !imp.LastComerWins {
			return Outcome{Line: row.Line, Errors: []FieldError{{
				Field:   strings.Join(schema.UniqueKey, ", "),
				Message: fmt.Sprintf("duplicate of row %d in this file", first),
			}}}
		}
		if _, dup := seen[key]; !dup {
			seen[key] = row.Line
		}
	}

	id, err := imp.saver.Save(ctx, schema, binding.Entity)
	if err != nil {
		return Outcome{Line: row.Line, Errors: []FieldError{{
			Message: err.Error(),
		}}}
	}

	return Outcome{Line: row.Line, EntityID: id}
}

// uniqueKeyOf builds the in-file duplicate detection key for an entity.
// Returns false when the schema declares no unique key.
func uniqueKeyOf(entity Entity, schema *Schema) (string, bool) {
	if len(schema.UniqueKey) == 0 {
		return "", false
	}
	parts := make([]string, len(schema.UniqueKey))
	for i, name := range schema.UniqueKey {
		parts[i] = FormatValue(entity[name])
	}
	return strings.Join(parts, "\x1f"), true
}
