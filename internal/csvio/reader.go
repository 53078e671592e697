// Package csvio maps decoded CSV text into row records for the importer.
// Parsing follows RFC 4180 via encoding/csv: quoted delimiters and
// embedded newlines do not split rows, doubled quotes escape, and both
// CRLF and LF line endings are accepted.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/csvadmin/csvadmin/internal/core"
)

// RowReader lazily yields core.Row records from decoded CSV text.
// The first record is the mandatory header row; each subsequent record is
// zipped positionally against it. Single pass, not restartable.
type RowReader struct {
	reader *csv.Reader
	header []string
	keys   []string // lower-cased, cleaned header names
	line   int
	done   bool
}

// NewRowReader parses the header row and prepares lazy row iteration.
// Returns core.ErrEmptyFile when the text contains no records at all.
func NewRowReader(text string) (*RowReader, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // shape mismatches are per-row errors, not fatal

	header, err := r.Read()
	if err == io.EOF {
		return nil, core.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(core.CleanCell(h))
	}

	return &RowReader{reader: r, header: header, keys: keys}, nil
}

// Header returns the raw header cells as read from the file.
func (rr *RowReader) Header() []string {
	return rr.header
}

// Next yields the next data row. A row whose field count does not match
// the header carries a RowShapeError instead of values; a row that the
// CSV parser itself rejects carries the parse error. Fully empty rows are
// skipped. Returns false when the input is exhausted.
func (rr *RowReader) Next() (core.Row, bool) {
	for !rr.done {
		record, err := rr.reader.Read()
		if err == io.EOF {
			rr.done = true
			break
		}

		rr.line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return core.Row{Line: rr.line, Err: fmt.Errorf("invalid csv: %v", parseErr.Err)}, true
			}
			return core.Row{Line: rr.line, Err: err}, true
		}

		if isEmpty(record) {
			rr.line--
			continue
		}

		if len(record) != len(rr.header) {
			return core.Row{
				Line: rr.line,
				Err:  &core.RowShapeError{Line: rr.line, Got: len(record), Want: len(rr.header)},
			}, true
		}

		values := make(map[string]string, len(record))
		for i, key := range rr.keys {
			values[key] = record[i]
		}
		return core.Row{Line: rr.line, Values: values}, true
	}

	return core.Row{}, false
}

// isEmpty reports whether every cell in the record is blank.
func isEmpty(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
