package mart

import (
	"salesmart/internal/transform/calendar"
	"salesmart/internal/transform/dimension"
	"salesmart/internal/transform/fact"
	"salesmart/pkg/records"
)

// Catalogue returns every output table, without rows, in persistence order.
func Catalogue() []records.Table {
	out := []records.Table{{Name: calendar.TableName, Columns: calendar.Columns}}
	for _, name := range Order[1 : len(Order)-1] {
		for _, s := range dimension.All() {
			if s.Table == name {
				out = append(out, records.Table{Name: s.Table, Columns: s.Schema()})
			}
		}
	}
	return append(out, records.Table{Name: fact.TableName, Columns: fact.Columns})
}
