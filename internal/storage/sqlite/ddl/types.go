// Package ddl contains SQLite-specific helpers for generating DDL.
package ddl

import "salesmart/pkg/records"

// MapType maps a logical column type onto a SQLite type affinity. Dates are
// stored as ISO text; decimals use NUMERIC affinity.
func MapType(t records.ColumnType) string {
	switch t {
	case records.Integer:
		return "INTEGER"
	case records.Decimal:
		return "NUMERIC"
	default:
		return "TEXT"
	}
}
