package store

// pg.go converts between coerced entity values and pgx parameter types.
// All conversions map nil (empty optional fields) to SQL NULL.

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/csvadmin/csvadmin/internal/core"
)

// toPgValue converts one coerced entity value to its pgtype parameter.
func toPgValue(v any, ft core.FieldType) any {
	if v == nil {
		return nullFor(ft)
	}

	switch ft {
	case core.FieldInt:
		return pgtype.Int8{Int64: v.(int64), Valid: true}
	case core.FieldNumber:
		var n pgtype.Numeric
		if err := n.Scan(v.(string)); err != nil {
			return pgtype.Numeric{}
		}
		return n
	case core.FieldDate:
		return pgtype.Date{Time: v.(time.Time), Valid: true}
	case core.FieldBool:
		return pgtype.Bool{Bool: v.(bool), Valid: true}
	default:
		return pgtype.Text{String: v.(string), Valid: true}
	}
}

// nullFor returns the typed NULL for a field type.
func nullFor(ft core.FieldType) any {
	switch ft {
	case core.FieldInt:
		return pgtype.Int8{}
	case core.FieldNumber:
		return pgtype.Numeric{}
	case core.FieldDate:
		return pgtype.Date{}
	case core.FieldBool:
		return pgtype.Bool{}
	default:
		return pgtype.Text{}
	}
}

// fromPgValue converts a scanned database value back to the coerced form
// the exporter and importer share.
func fromPgValue(v any, ft core.FieldType) any {
	if v == nil {
		return nil
	}

	switch ft {
	case core.FieldInt:
		switch n := v.(type) {
		case int64:
			return n
		case int32:
			return int64(n)
		case int16:
			return int64(n)
		}
		return nil
	case core.FieldNumber:
		switch n := v.(type) {
		case pgtype.Numeric:
			return numericString(n)
		case string:
			return n
		case float64:
			s, err := core.ParseNumber(formatFloat(n))
			if err != nil {
				return nil
			}
			return s
		}
		return nil
	case core.FieldDate:
		if t, ok := v.(time.Time); ok {
			return t
		}
		return nil
	case core.FieldBool:
		if b, ok := v.(bool); ok {
			return b
		}
		return nil
	default:
		if s, ok := v.(string); ok {
			return s
		}
		return nil
	}
}

// numericString renders a pgtype.Numeric in the canonical form produced
// by core.ParseNumber, so export round trips byte-identically.
func numericString(n pgtype.Numeric) any {
	if !n.Valid || n.Int == nil {
		return nil
	}
	v, err := n.Value()
	if err != nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	canon, err := core.ParseNumber(s)
	if err != nil {
		return nil
	}
	return canon
}

func formatFloat(f float64) string {
	return big.NewFloat(f).Text('f', -1)
}

// toPgUUID converts a uuid.UUID to its pgtype parameter.
func toPgUUID(u uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: u, Valid: true}
}
