package core

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		// Valid: basic integers
		{name: "positive integer", input: "123", want: "123"},
		{name: "zero", input: "0", want: "0"},
		{name: "negative integer", input: "-456", want: "-456"},

		// Valid: decimals
		{name: "decimal number", input: "123.45", want: "123.45"},
		{name: "leading decimal point", input: ".99", want: "0.99"},
		{name: "trailing decimal point", input: "99.", want: "99"},
		{name: "explicit plus sign", input: "+12.5", want: "12.5"},

		// Valid: currency symbols
		{name: "dollar sign", input: "$1,234.56", want: "1234.56"},
		{name: "euro sign", input: "€1234.56", want: "1234.56"},
		{name: "pound sign", input: "£1234.56", want: "1234.56"},

		// Valid: thousands separators
		{name: "thousands separator", input: "1,234,567.89", want: "1234567.89"},
		{name: "millions with separators", input: "1,000,000", want: "1000000"},

		// Valid: accounting format (parentheses for negative)
		{name: "accounting negative parentheses", input: "(123.45)", want: "-123.45"},
		{name: "accounting negative with currency", input: "($1,234.56)", want: "-1234.56"},
		{name: "accounting negative with spaces", input: "( 999.99 )", want: "-999.99"},

		// Invalid
		{name: "empty string", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "plain text", input: "notanumber", wantErr: true},
		{name: "mixed digits and letters", input: "12abc", wantErr: true},
		{name: "two decimal points", input: "1.2.3", wantErr: true},
		{name: "lone minus", input: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumber(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNumber(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumber(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumber_Canonical(t *testing.T) {
	// The canonical form must be a fixed point: parsing it again returns
	// the same string, so exports round trip byte-identically.
	inputs := []string{"$1,234.56", "(99.9)", ".5", "+7", "1000000"}
	for _, input := range inputs {
		first, err := ParseNumber(input)
		if err != nil {
			t.Fatalf("ParseNumber(%q) error = %v", input, err)
		}
		second, err := ParseNumber(first)
		if err != nil {
			t.Fatalf("ParseNumber(%q) error = %v", first, err)
		}
		if first != second {
			t.Errorf("canonical form not stable: %q -> %q -> %q", input, first, second)
		}
	}
}

// ----------------------------------------------------------------------------
// ParseInt Tests
// ----------------------------------------------------------------------------

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "positive", input: "30", want: 30},
		{name: "negative", input: "-42", want: -42},
		{name: "zero", input: "0", want: 0},
		{name: "thousands separator", input: "1,000", want: 1000},
		{name: "surrounding whitespace", input: "  7 ", want: 7},
		{name: "empty", input: "", wantErr: true},
		{name: "text", input: "notanumber", wantErr: true},
		{name: "decimal", input: "3.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseInt(%q) = %d, want error", tt.input, got)
				}
				if err.Error() != "invalid integer" {
					t.Errorf("ParseInt(%q) error = %q, want %q", tt.input, err.Error(), "invalid integer")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInt(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseDate Tests
// ----------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // YYYY-MM-DD of expected date
		wantErr bool
	}{
		{name: "ISO format", input: "2024-03-15", want: "2024-03-15"},
		{name: "US slash format", input: "3/15/2024", want: "2024-03-15"},
		{name: "US padded slash", input: "03/15/2024", want: "2024-03-15"},
		{name: "dotted format", input: "15.1.2024", wantErr: true}, // day-first not supported
		{name: "month name", input: "Jan 2, 2006", want: "2006-01-02"},
		{name: "compact", input: "20240315", want: "2024-03-15"},
		{name: "two digit year recent", input: "3/15/24", want: "2024-03-15"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestParseDate_TwoDigitYearPivot(t *testing.T) {
	// A two digit year far in the future falls back a century.
	farFuture := (time.Now().Year() + TwoDigitYearPivot + 5) % 100
	input := time.Date(2000+farFuture, 6, 1, 0, 0, 0, 0, time.UTC).Format("1/2/06")

	got, err := ParseDate(input)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", input, err)
	}
	if got.Year() != 1900+farFuture {
		t.Errorf("ParseDate(%q).Year() = %d, want %d", input, got.Year(), 1900+farFuture)
	}
}

// ----------------------------------------------------------------------------
// ParseBool Tests
// ----------------------------------------------------------------------------

func TestParseBool(t *testing.T) {
	trueInputs := []string{"true", "TRUE", "t", "yes", "Y", "1"}
	falseInputs := []string{"false", "FALSE", "f", "no", "N", "0"}
	badInputs := []string{"", "maybe", "2", "yep"}

	for _, input := range trueInputs {
		if got, err := ParseBool(input); err != nil || !got {
			t.Errorf("ParseBool(%q) = %v, %v, want true, nil", input, got, err)
		}
	}
	for _, input := range falseInputs {
		if got, err := ParseBool(input); err != nil || got {
			t.Errorf("ParseBool(%q) = %v, %v, want false, nil", input, got, err)
		}
	}
	for _, input := range badInputs {
		if _, err := ParseBool(input); err == nil {
			t.Errorf("ParseBool(%q) expected error", input)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell / FormatValue Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "whitespace", input: "  hello  ", want: "hello"},
		{name: "excel formula quoted", input: `="12345"`, want: "12345"},
		{name: "excel formula bare", input: "=12345", want: "12345"},
		{name: "surrounding quotes", input: `"quoted"`, want: "quoted"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: ""},
		{name: "text", input: "hello", want: "hello"},
		{name: "int", input: int64(42), want: "42"},
		{name: "bool true", input: true, want: "true"},
		{name: "bool false", input: false, want: "false"},
		{name: "date", input: date, want: "2024-03-15"},
		{name: "canonical number", input: "1234.56", want: "1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.input); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
