package core

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Registry associates entity keys with their schemas. The application
// constructs one at startup and passes it to the layers that need it;
// there is no package-level instance.
type Registry struct {
	defs map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Schema)}
}

// Register adds a schema, filling in derivable defaults. It returns an
// error on a duplicate entity key or an inconsistent declaration.
func (r *Registry) Register(schema *Schema) error {
	if schema.Entity == "" {
		return fmt.Errorf("schema has no entity key")
	}
	if _, exists := r.defs[schema.Entity]; exists {
		return fmt.Errorf("entity already registered: %s", schema.Entity)
	}
	if len(schema.Fields) == 0 {
		return fmt.Errorf("entity %s declares no fields", schema.Entity)
	}

	if schema.Label == "" {
		schema.Label = schema.Entity
	}
	if schema.Table == "" {
		schema.Table = schema.Entity
	}
	if len(schema.Encodings) == 0 {
		schema.Encodings = []string{"utf-8"}
	}
	for i := range schema.Fields {
		if schema.Fields[i].Column == "" {
			schema.Fields[i].Column = toColumnName(schema.Fields[i].Name)
		}
		if schema.Fields[i].Label == "" {
			schema.Fields[i].Label = schema.Fields[i].Name
		}
	}

	for _, name := range schema.UniqueKey {
		if _, ok := schema.Field(name); !ok {
			return fmt.Errorf("entity %s: unique key field %q not declared", schema.Entity, name)
		}
	}

	r.defs[schema.Entity] = schema
	return nil
}

// Get returns the schema for an entity key.
func (r *Registry) Get(entity string) (*Schema, bool) {
	schema, ok := r.defs[entity]
	return schema, ok
}

// All returns all registered schemas sorted by entity key.
func (r *Registry) All() []*Schema {
	result := make([]*Schema, 0, len(r.defs))
	for _, schema := range r.defs {
		result = append(result, schema)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Entity < result[j].Entity
	})
	return result
}

// Count returns the number of registered entity types.
func (r *Registry) Count() int {
	return len(r.defs)
}

// toColumnName converts a field name to a snake_case database column name.
func toColumnName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '-':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
