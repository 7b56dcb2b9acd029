package ddl

import (
	"strings"

	"salesmart/pkg/records"
)

// TypeMapper maps a logical column type onto a backend SQL type.
type TypeMapper func(records.ColumnType) string

// Qualify joins schema and table; an empty schema leaves the name as is.
func Qualify(schema, table string) string {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return table
	}
	return schema + "." + table
}

// FromTable derives a table definition from a typed row set.
func FromTable(t records.Table, schema string, mapType TypeMapper) TableDef {
	defs := make([]ColumnDef, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = ColumnDef{
			Name:       c.Name,
			SQLType:    mapType(c.Type),
			Nullable:   c.Nullable,
			PrimaryKey: c.PrimaryKey,
		}
	}
	return TableDef{FQN: Qualify(schema, t.Name), Columns: defs}
}
