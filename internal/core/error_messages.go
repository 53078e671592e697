package core

// error_messages.go maps technical errors to user-friendly messages with
// support codes. Admins quote the code to support staff for diagnosis.
//
// Codes are grouped by category:
//
//	DB001 duplicate key          DB002 unique constraint
//	DB003 foreign key            DB004 connection refused
//	DB005 connection reset       DB006 timeout
//	VAL001 invalid date          VAL002 invalid number
//	VAL003 invalid integer       VAL004 required field empty
//	VAL005 missing column        VAL006 invalid enum
//	VAL007 duplicate row in file
//	FILE001 file too large       FILE002 invalid csv
//	FILE003 encoding error       FILE004 no file
//	FILE005 empty file           FILE006 row shape mismatch
//	ENT001 unknown entity
//	ERR000 fallback
//
// Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Database constraint errors
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this key already exists",
			Action:  "Review the rejected rows for duplicates",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Check for duplicate entries in your CSV",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review your data for duplicate key values",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Ensure parent records are imported first",
			Code:    "DB003",
		},
	},

	// Database connection errors
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try importing a smaller file or try again later",
			Code:    "DB006",
		},
	},

	// Validation errors
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove currency symbols and use standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid integer",
		msg: UserMessage{
			Message: "Invalid whole number detected",
			Action:  "Use digits only, without decimal points",
			Code:    "VAL003",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Ensure all required columns have values",
			Code:    "VAL004",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Check that all required columns are present in your file",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed values for this field",
			Code:    "VAL006",
		},
	},
	{
		pattern: "duplicate of row",
		msg: UserMessage{
			Message: "Row duplicates an earlier row in the same file",
			Action:  "Remove repeated rows or enable last-row-wins",
			Code:    "VAL007",
		},
	},

	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File could not be decoded with any candidate encoding",
			Action:  "Save the file as UTF-8 and retry",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to import",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no header row",
			Action:  "Please upload a CSV file with a header and data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "fields, expected",
		msg: UserMessage{
			Message: "A row has the wrong number of fields",
			Action:  "Check the row for stray commas or unclosed quotes",
			Code:    "FILE006",
		},
	},

	// Entity errors
	{
		pattern: "unknown entity",
		msg: UserMessage{
			Message: "The requested entity type is not registered",
			Action:  "Verify the entity name is correct",
			Code:    "ENT001",
		},
	},
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "Unknown error", Code: "ERR000"}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
}

// MapErrorWithContext adds operation context to the mapped message.
func MapErrorWithContext(err error, operation string) UserMessage {
	msg := MapError(err)
	if operation != "" {
		msg.Message = fmt.Sprintf("%s: %s", operation, msg.Message)
	}
	return msg
}
