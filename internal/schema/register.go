package schema

import "github.com/csvadmin/csvadmin/internal/core"

// RegisterAll adds every declared entity schema to the registry.
func RegisterAll(reg *core.Registry) error {
	for _, s := range []*core.Schema{
		Customers(),
		Products(),
	} {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}
