// Package store persists validated entities to PostgreSQL. Each save is
// an independent write: no transaction spans an import job, so one row's
// failure never rolls back another row's success.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/csvadmin/csvadmin/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Store writes entities through a DBTX and implements core.Saver.
type Store struct {
	db DBTX

	// SkipExisting controls unique-key collisions with records already
	// in the database: false updates them with the imported values,
	// true leaves them untouched.
	SkipExisting bool
}

// New creates a Store on the given connection or pool.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// Save inserts one entity and returns its ID. On a unique-key collision
// the row is upserted or skipped per SkipExisting; either way the ID of
// the record that ends up holding the key is returned.
func (s *Store) Save(ctx context.Context, schema *core.Schema, entity core.Entity) (string, error) {
	id := uuid.New()

	cols := []string{"id"}
	args := []any{toPgUUID(id)}
	for _, f := range schema.Fields {
		cols = append(cols, quoteIdent(f.Column))
		args = append(args, toPgValue(entity[f.Name], f.Type))
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(schema.Table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if len(schema.UniqueKey) > 0 {
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO ", conflictTarget(schema))
		if s.SkipExisting {
			b.WriteString("NOTHING")
		} else {
			b.WriteString("UPDATE SET " + updateSet(schema))
		}
	}
	b.WriteString(" RETURNING id")

	var saved pgtype.UUID
	err := s.db.QueryRow(ctx, b.String(), args...).Scan(&saved)
	if errors.Is(err, pgx.ErrNoRows) && s.SkipExisting {
		// DO NOTHING returns no row; report the existing record's ID.
		return s.existingID(ctx, schema, entity)
	}
	if err != nil {
		return "", fmt.Errorf("save %s: %w", schema.Entity, err)
	}
	return uuid.UUID(saved.Bytes).String(), nil
}

// existingID looks up the record already holding the entity's unique key.
func (s *Store) existingID(ctx context.Context, schema *core.Schema, entity core.Entity) (string, error) {
	var conds []string
	var args []any
	for i, name := range schema.UniqueKey {
		f, _ := schema.Field(name)
		conds = append(conds, fmt.Sprintf("%s = $%d", quoteIdent(f.Column), i+1))
		args = append(args, toPgValue(entity[f.Name], f.Type))
	}

	query := fmt.Sprintf("SELECT id FROM %s WHERE %s",
		quoteIdent(schema.Table), strings.Join(conds, " AND "))

	var existing pgtype.UUID
	if err := s.db.QueryRow(ctx, query, args...).Scan(&existing); err != nil {
		return "", fmt.Errorf("lookup existing %s: %w", schema.Entity, err)
	}
	return uuid.UUID(existing.Bytes).String(), nil
}

// List reads all rows of the schema's table as entities, ordered by the
// unique key (falling back to id) so exports are deterministic.
func (s *Store) List(ctx context.Context, schema *core.Schema) ([]core.Entity, error) {
	cols := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		cols[i] = quoteIdent(f.Column)
	}

	order := "id"
	if len(schema.UniqueKey) > 0 {
		order = conflictTarget(schema)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), quoteIdent(schema.Table), order)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", schema.Entity, err)
	}
	defer rows.Close()

	var entities []core.Entity
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.Entity, err)
		}
		entity := make(core.Entity, len(schema.Fields))
		for i, f := range schema.Fields {
			entity[f.Name] = fromPgValue(values[i], f.Type)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", schema.Entity, err)
	}
	return entities, nil
}

// conflictTarget renders the unique key as a column list.
func conflictTarget(schema *core.Schema) string {
	cols := make([]string, len(schema.UniqueKey))
	for i, name := range schema.UniqueKey {
		f, _ := schema.Field(name)
		cols[i] = quoteIdent(f.Column)
	}
	return strings.Join(cols, ", ")
}

// updateSet renders the non-key fields as an EXCLUDED assignment list.
func updateSet(schema *core.Schema) string {
	key := make(map[string]bool, len(schema.UniqueKey))
	for _, name := range schema.UniqueKey {
		key[strings.ToLower(name)] = true
	}

	var assigns []string
	for _, f := range schema.Fields {
		if key[strings.ToLower(f.Name)] {
			continue
		}
		assigns = append(assigns, fmt.Sprintf("%s = EXCLUDED.%s", quoteIdent(f.Column), quoteIdent(f.Column)))
	}
	if len(assigns) == 0 {
		// Key-only schema: nothing to update, but DO UPDATE still has
		// to assign something so RETURNING yields the existing row.
		return "id = " + quoteIdent(schema.Table) + ".id"
	}
	return strings.Join(assigns, ", ")
}

// quoteIdent quotes a SQL identifier. Column and table names come from
// registered schemas, not user input, but quoting keeps reserved words
// and mixed case safe.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
