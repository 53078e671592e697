package core

import (
	"errors"
	"fmt"
)

// ErrEncoding is the fatal error class for a whole import or export call:
// no candidate encoding decodes the payload, or an exported value cannot
// be represented in the target encoding.
var ErrEncoding = errors.New("encoding error")

// ErrEmptyFile is returned when an uploaded payload has no header row.
var ErrEmptyFile = errors.New("empty file")

// RowShapeError marks a row whose field count does not match the header.
// It is a per-row error: the row is rejected and processing continues.
type RowShapeError struct {
	Line int
	Got  int
	Want int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d has %d fields, expected %d", e.Line, e.Got, e.Want)
}

// FieldError is a single validation failure on one field of one row.
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
