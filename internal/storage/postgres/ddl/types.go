// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

import "salesmart/pkg/records"

// MapType maps a logical column type onto a Postgres SQL type.
//
//	Integer -> BIGINT
//	Date    -> DATE
//	Decimal -> NUMERIC(19,4)
//	Text    -> TEXT
func MapType(t records.ColumnType) string {
	switch t {
	case records.Integer:
		return "BIGINT"
	case records.Date:
		return "DATE"
	case records.Decimal:
		return "NUMERIC(19,4)"
	default:
		return "TEXT"
	}
}
