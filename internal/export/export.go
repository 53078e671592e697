// Package export serializes entity collections into downloadable CSV or
// XLSX bytes using a declared column order and target encoding.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/csvadmin/csvadmin/internal/charset"
	"github.com/csvadmin/csvadmin/internal/core"
)

// Spec describes one export: which fields, in what encoding, and how the
// header and quoting are rendered. The zero value exports every schema
// field as UTF-8 with minimal quoting.
type Spec struct {
	Fields        []string // Include list; empty means all schema fields
	ExcludeFields []string // Applied after the include list
	Encoding      string   // Target encoding (default utf-8)
	QuoteAll      bool     // Force quotes around every field
	UseLabels     bool     // Emit field labels instead of names in the header
	UseCRLF       bool     // \r\n line endings instead of \n
}

// Columns resolves the spec's field selection against the schema,
// preserving schema order. Unknown names in the include list are an error;
// unknown names in the exclude list are ignored.
func (s Spec) Columns(schema *core.Schema) ([]core.Field, error) {
	include := map[string]bool{}
	for _, name := range s.Fields {
		f, ok := schema.Field(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q for entity %s", name, schema.Entity)
		}
		include[f.Name] = true
	}

	exclude := map[string]bool{}
	for _, name := range s.ExcludeFields {
		if f, ok := schema.Field(name); ok {
			exclude[f.Name] = true
		}
	}

	var cols []core.Field
	for _, f := range schema.Fields {
		if len(include) > 0 && !include[f.Name] {
			continue
		}
		if exclude[f.Name] {
			continue
		}
		cols = append(cols, f)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no fields selected for entity %s", schema.Entity)
	}
	return cols, nil
}

// CSV serializes entities in input order and encodes the result per the
// spec. The header row is always emitted. Deterministic: identical input
// produces byte-identical output.
func CSV(schema *core.Schema, entities []core.Entity, spec Spec) ([]byte, error) {
	cols, err := spec.Columns(schema)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	write := func(record []string) error {
		return writeRecord(&buf, record, spec)
	}

	if err := write(headerRow(cols, spec)); err != nil {
		return nil, err
	}
	for _, entity := range entities {
		record := make([]string, len(cols))
		for i, f := range cols {
			record[i] = core.FormatValue(entity[f.Name])
		}
		if err := write(record); err != nil {
			return nil, err
		}
	}

	encName := spec.Encoding
	if encName == "" {
		encName = "utf-8"
	}
	out, err := charset.Encode(buf.String(), encName)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", schema.Entity, err)
	}
	return out, nil
}

// headerRow renders the header per the spec's label preference.
func headerRow(cols []core.Field, spec Spec) []string {
	header := make([]string, len(cols))
	for i, f := range cols {
		if spec.UseLabels {
			header[i] = f.Label
		} else {
			header[i] = f.Name
		}
	}
	return header
}

// writeRecord writes one record with the spec's quoting and line ending.
// encoding/csv only quotes when needed, so the quote-all dialect is
// rendered by hand.
func writeRecord(buf *bytes.Buffer, record []string, spec Spec) error {
	if spec.QuoteAll {
		for i, field := range record {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
		}
		if spec.UseCRLF {
			buf.WriteByte('\r')
		}
		buf.WriteByte('\n')
		return nil
	}

	w := csv.NewWriter(buf)
	w.UseCRLF = spec.UseCRLF
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
