// Package schema declares the entity types this deployment imports and
// exports. Each declaration is a plain core.Schema constructed once at
// startup and handed to the registry; adding an entity type means adding
// a declaration here and a Register call in RegisterAll.
package schema

import "github.com/csvadmin/csvadmin/internal/core"

// Customers describes the customer roster imported by the sales admins.
func Customers() *core.Schema {
	return &core.Schema{
		Entity: "customers",
		Label:  "Customers",
		Table:  "customers",
		Fields: []core.Field{
			{Name: "customer_code", Label: "Customer Code", Type: core.FieldText, Required: true},
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true},
			{Name: "email", Label: "Email", Type: core.FieldText, Required: false, AllowEmpty: true},
			{Name: "state", Label: "State", Type: core.FieldText, Normalizer: NormalizeUsState, AllowEmpty: true},
			{Name: "tier", Label: "Tier", Type: core.FieldEnum, EnumValues: []string{"standard", "premium", "enterprise"}, AllowEmpty: true},
			{Name: "credit_limit", Label: "Credit Limit", Type: core.FieldNumber, AllowEmpty: true},
			{Name: "signed_up", Label: "Signed Up", Type: core.FieldDate, AllowEmpty: true},
			{Name: "active", Label: "Active", Type: core.FieldBool, AllowEmpty: true},
		},
		UniqueKey: []string{"customer_code"},
		Encodings: []string{"utf-8", "windows-1252"},
	}
}
