package core

// validation.go binds one raw row to a schema for constraint checking
// before persistence.
//
// Validation happens at three levels:
//  1. Header validation: required columns must be present in the file
//  2. Field validation: presence, type coercion, enum membership
//  3. Cross-field validation: schema-level Check hooks
//
// All field errors for a row are collected in schema field order, not
// just the first, so the admin sees every problem at once.

import (
	"fmt"
	"strings"
)

// Binding is the validation object for one row: raw values bound to a
// schema, coerced and checked. Exactly one of Entity or Errors is
// meaningful after Validate.
type Binding struct {
	Row    Row
	Entity Entity
	Errors []FieldError
}

// Valid reports whether the bound row passed all constraints.
func (b *Binding) Valid() bool {
	return len(b.Errors) == 0
}

// Bind constructs a validation object for one row against the schema and
// runs all checks. Row.Values keys are expected lower-cased (as produced
// by the row mapper).
func Bind(row Row, schema *Schema) *Binding {
	b := &Binding{Row: row}

	if row.Err != nil {
		b.Errors = append(b.Errors, FieldError{Message: row.Err.Error()})
		return b
	}

	entity := make(Entity, len(schema.Fields))
	for _, f := range schema.Fields {
		raw, present := row.Values[strings.ToLower(f.Name)]
		if !present {
			if f.Required {
				b.Errors = append(b.Errors, FieldError{
					Field:   f.Name,
					Message: "missing required column",
				})
			} else {
				entity[f.Name] = nil
			}
			continue
		}

		raw = CleanCell(raw)
		if f.Normalizer != nil && raw != "" {
			raw = f.Normalizer(raw)
		}

		if raw == "" {
			if f.Required && !f.AllowEmpty {
				b.Errors = append(b.Errors, FieldError{
					Field:   f.Name,
					Message: "required field is empty",
				})
				continue
			}
			entity[f.Name] = nil
			continue
		}

		val, err := coerceField(raw, f)
		if err != nil {
			b.Errors = append(b.Errors, FieldError{
				Field:   f.Name,
				Value:   raw,
				Message: err.Error(),
			})
			continue
		}
		entity[f.Name] = val
	}

	// Cross-field checks only run on rows that are field-level clean,
	// mirroring how model-level validation follows field validation.
	if len(b.Errors) == 0 {
		for _, check := range schema.Checks {
			b.Errors = append(b.Errors, check(entity)...)
		}
	}

	if len(b.Errors) == 0 {
		b.Entity = entity
	}
	return b
}

// coerceField converts one raw cell to its typed value per the field spec.
func coerceField(raw string, f Field) (any, error) {
	switch f.Type {
	case FieldInt:
		return ParseInt(raw)
	case FieldNumber:
		return ParseNumber(raw)
	case FieldDate:
		return ParseDate(raw)
	case FieldBool:
		return ParseBool(raw)
	case FieldEnum:
		for _, ev := range f.EnumValues {
			if strings.EqualFold(ev, raw) {
				return ev, nil
			}
		}
		return nil, fmt.Errorf("invalid enum: must be one of %s", strings.Join(f.EnumValues, ", "))
	default:
		return raw, nil
	}
}

// ValidateHeaders checks that every required column exists in the file
// header. Returns an error listing all missing columns at once.
func ValidateHeaders(header []string, schema *Schema) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(CleanCell(h))] = true
	}

	var missing []string
	for _, f := range schema.Fields {
		if f.Required && !present[strings.ToLower(f.Name)] {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
