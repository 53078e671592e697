package core

// convert.go provides coercion from raw CSV text to typed Go values.
//
// These functions handle the messy reality of user-provided CSV data:
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Currency symbols and thousand separators in numbers
//   - Various boolean representations (yes/no, true/false, 1/0)
//   - Excel formula prefixes (="value")
//
// Coercion returns the typed value plus an error whose message is what
// the admin sees in the import report, so wording here is user-facing.

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numberRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would land more than this many years in the future are
// assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

var (
	errInvalidInt    = errors.New("invalid integer")
	errInvalidNumber = errors.New("invalid number")
	errInvalidDate   = errors.New("invalid date")
	errInvalidBool   = errors.New("must be yes/no, true/false, or 1/0")
)

// ParseInt coerces a string to int64. Thousands separators are tolerated.
func ParseInt(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errInvalidInt
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errInvalidInt
	}
	return n, nil
}

// ParseNumber coerces a string to a canonical numeric string.
// Handles currency symbols, thousands separators, and accounting format
// (parentheses for negative). The canonical form is what gets persisted
// and exported, so it must survive a round trip unchanged.
func ParseNumber(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errInvalidNumber
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numberRegex.MatchString(s) {
		return "", errInvalidNumber
	}

	// Canonicalize: strip leading '+', bare ".99" -> "0.99", "99." -> "99"
	s = strings.TrimPrefix(s, "+")
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}
	digits = strings.TrimSuffix(digits, ".")
	if neg {
		return "-" + digits, nil
	}
	return digits, nil
}

// ParseDate coerces a string to a time.Time, trying 4-digit-year layouts
// first, then 2-digit-year layouts with pivot adjustment.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errInvalidDate
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Go maps 2-digit years to 1969-2068; apply a consistent
			// pivot so far-future years fall back a century.
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, nil
		}
	}

	return time.Time{}, errInvalidDate
}

// ParseBool coerces a string to bool.
// Accepts true/false, yes/no, t/f, y/n, 1/0 in any case.
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	default:
		return false, errInvalidBool
	}
}

// CleanCell removes common CSV artifacts from a cell value:
// trims whitespace, strips an Excel formula prefix (="..."), and strips
// surrounding quote characters.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// FormatValue renders a coerced entity value back to its CSV text form.
// It is the inverse of field coercion: a formatted value re-imports to
// the same coerced value.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return ""
	}
}
