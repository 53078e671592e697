package core

import (
	"strings"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Entity: "people",
		Fields: []Field{
			{Name: "code", Type: FieldText, Required: true},
			{Name: "name", Type: FieldText, Required: true},
			{Name: "age", Type: FieldInt},
			{Name: "tier", Type: FieldEnum, EnumValues: []string{"standard", "premium"}},
			{Name: "balance", Type: FieldNumber},
			{Name: "joined", Type: FieldDate},
			{Name: "active", Type: FieldBool},
		},
		UniqueKey: []string{"code"},
	}
}

func row(values map[string]string) Row {
	return Row{Line: 1, Values: values}
}

func TestBind_ValidRow(t *testing.T) {
	b := Bind(row(map[string]string{
		"code":    "C1",
		"name":    "Alice",
		"age":     "30",
		"tier":    "premium",
		"balance": "$1,234.56",
		"joined":  "2024-03-15",
		"active":  "yes",
	}), testSchema())

	if !b.Valid() {
		t.Fatalf("expected valid, got errors: %v", b.Errors)
	}
	if b.Entity["age"] != int64(30) {
		t.Errorf("age = %v, want int64(30)", b.Entity["age"])
	}
	if b.Entity["tier"] != "premium" {
		t.Errorf("tier = %v, want premium", b.Entity["tier"])
	}
	if b.Entity["balance"] != "1234.56" {
		t.Errorf("balance = %v, want 1234.56", b.Entity["balance"])
	}
	if b.Entity["active"] != true {
		t.Errorf("active = %v, want true", b.Entity["active"])
	}
}

func TestBind_CollectsAllErrors(t *testing.T) {
	// A row with three bad fields reports all three, in schema field order.
	b := Bind(row(map[string]string{
		"code":   "C1",
		"name":   "",
		"age":    "abc",
		"tier":   "gold",
		"joined": "2024-01-01",
	}), testSchema())

	if b.Valid() {
		t.Fatal("expected invalid row")
	}
	if len(b.Errors) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(b.Errors), b.Errors)
	}
	if b.Errors[0].Field != "name" || b.Errors[0].Message != "required field is empty" {
		t.Errorf("errors[0] = %+v", b.Errors[0])
	}
	if b.Errors[1].Field != "age" || b.Errors[1].Message != "invalid integer" {
		t.Errorf("errors[1] = %+v", b.Errors[1])
	}
	if b.Errors[2].Field != "tier" || !strings.Contains(b.Errors[2].Message, "must be one of") {
		t.Errorf("errors[2] = %+v", b.Errors[2])
	}
	if b.Entity != nil {
		t.Errorf("Entity should be nil on invalid row, got %v", b.Entity)
	}
}

func TestBind_MissingRequiredColumn(t *testing.T) {
	b := Bind(row(map[string]string{"name": "Alice"}), testSchema())

	if b.Valid() {
		t.Fatal("expected invalid row")
	}
	if b.Errors[0].Field != "code" || b.Errors[0].Message != "missing required column" {
		t.Errorf("errors[0] = %+v", b.Errors[0])
	}
}

func TestBind_OptionalEmptyIsNil(t *testing.T) {
	b := Bind(row(map[string]string{
		"code": "C1",
		"name": "Alice",
		"age":  "",
	}), testSchema())

	if !b.Valid() {
		t.Fatalf("expected valid, got errors: %v", b.Errors)
	}
	if v, ok := b.Entity["age"]; !ok || v != nil {
		t.Errorf("age = %v (present=%v), want nil present", v, ok)
	}
	// Columns absent from the file are nil too.
	if v, ok := b.Entity["balance"]; !ok || v != nil {
		t.Errorf("balance = %v (present=%v), want nil present", v, ok)
	}
}

func TestBind_EnumCaseInsensitive(t *testing.T) {
	b := Bind(row(map[string]string{
		"code": "C1",
		"name": "Alice",
		"tier": "PREMIUM",
	}), testSchema())

	if !b.Valid() {
		t.Fatalf("expected valid, got errors: %v", b.Errors)
	}
	// Canonical casing from the enum list wins.
	if b.Entity["tier"] != "premium" {
		t.Errorf("tier = %v, want premium", b.Entity["tier"])
	}
}

func TestBind_Normalizer(t *testing.T) {
	schema := &Schema{
		Entity: "t",
		Fields: []Field{
			{Name: "state", Type: FieldText, Normalizer: func(s string) string {
				if strings.EqualFold(s, "california") {
					return "CA"
				}
				return s
			}},
		},
		UniqueKey: []string{"state"},
	}

	b := Bind(row(map[string]string{"state": "California"}), schema)
	if !b.Valid() {
		t.Fatalf("expected valid, got errors: %v", b.Errors)
	}
	if b.Entity["state"] != "CA" {
		t.Errorf("state = %v, want CA", b.Entity["state"])
	}
}

func TestBind_CrossFieldCheck(t *testing.T) {
	schema := testSchema()
	schema.Checks = []CheckFunc{
		func(e Entity) []FieldError {
			if e["name"] == "forbidden" {
				return []FieldError{{Field: "name", Message: "name not allowed"}}
			}
			return nil
		},
	}

	b := Bind(row(map[string]string{"code": "C1", "name": "forbidden"}), schema)
	if b.Valid() {
		t.Fatal("expected check to reject row")
	}
	if b.Errors[0].Message != "name not allowed" {
		t.Errorf("errors[0] = %+v", b.Errors[0])
	}

	// Checks are skipped when field-level errors exist.
	b = Bind(row(map[string]string{"code": "C1", "name": "forbidden", "age": "abc"}), schema)
	for _, fe := range b.Errors {
		if fe.Message == "name not allowed" {
			t.Error("cross-field check ran on a row with field errors")
		}
	}
}

func TestBind_RowError(t *testing.T) {
	b := Bind(Row{Line: 3, Err: &RowShapeError{Line: 3, Got: 2, Want: 5}}, testSchema())
	if b.Valid() {
		t.Fatal("expected invalid row")
	}
	if want := "row 3 has 2 fields, expected 5"; b.Errors[0].Message != want {
		t.Errorf("errors[0].Message = %q, want %q", b.Errors[0].Message, want)
	}
}

func TestValidateHeaders(t *testing.T) {
	schema := testSchema()

	if err := ValidateHeaders([]string{"code", "name", "age"}, schema); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Case-insensitive, cell artifacts cleaned.
	if err := ValidateHeaders([]string{"CODE", `"Name"`}, schema); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateHeaders([]string{"age"}, schema)
	if err == nil {
		t.Fatal("expected error for missing required columns")
	}
	if want := "missing required columns: code, name"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
