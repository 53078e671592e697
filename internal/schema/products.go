package schema

import "github.com/csvadmin/csvadmin/internal/core"

// Products describes the product catalog with a cross-field price check.
func Products() *core.Schema {
	return &core.Schema{
		Entity: "products",
		Label:  "Products",
		Table:  "products",
		Fields: []core.Field{
			{Name: "sku", Label: "SKU", Type: core.FieldText, Required: true},
			{Name: "name", Label: "Product Name", Type: core.FieldText, Required: true},
			{Name: "category", Label: "Category", Type: core.FieldEnum, EnumValues: []string{"hardware", "software", "services"}, Required: true},
			{Name: "quantity", Label: "Quantity", Type: core.FieldInt, Required: true, AllowEmpty: true},
			{Name: "list_price", Label: "List Price", Type: core.FieldNumber, Required: true},
			{Name: "sale_price", Label: "Sale Price", Type: core.FieldNumber, AllowEmpty: true},
			{Name: "discontinued", Label: "Discontinued", Type: core.FieldBool, AllowEmpty: true},
		},
		UniqueKey: []string{"sku"},
		Encodings: []string{"utf-8", "windows-1252"},
		Checks:    []core.CheckFunc{salePriceBelowList},
	}
}

// salePriceBelowList rejects rows whose sale price exceeds the list price.
func salePriceBelowList(e core.Entity) []core.FieldError {
	list, ok1 := e["list_price"].(string)
	sale, ok2 := e["sale_price"].(string)
	if !ok1 || !ok2 {
		return nil
	}
	if numberLess(list, sale) {
		return []core.FieldError{{
			Field:   "sale_price",
			Value:   sale,
			Message: "sale price exceeds list price",
		}}
	}
	return nil
}
