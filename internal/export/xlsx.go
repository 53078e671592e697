package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/csvadmin/csvadmin/internal/core"
)

// XLSX serializes entities into a single-sheet workbook. Field selection
// and header labels follow the spec; encoding and quoting options do not
// apply to the xlsx container.
func XLSX(schema *core.Schema, entities []core.Entity, spec Spec) ([]byte, error) {
	cols, err := spec.Columns(schema)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", headerRowAny(cols, spec)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, entity := range entities {
		row := make([]any, len(cols))
		for j, field := range cols {
			row[j] = cellValue(entity[field.Name])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headerRowAny(cols []core.Field, spec Spec) *[]any {
	header := headerRow(cols, spec)
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return &row
}

// cellValue keeps native types where excelize renders them sensibly and
// falls back to the CSV text form elsewhere.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case int64, bool:
		return v
	default:
		return core.FormatValue(v)
	}
}
