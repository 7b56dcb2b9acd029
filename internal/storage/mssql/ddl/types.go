// Package ddl contains MSSQL-specific helpers for generating DDL.
package ddl

import "salesmart/pkg/records"

// MapType maps a logical column type onto a SQL Server column type. Text uses
// NVARCHAR so Spanish labels survive any database collation.
func MapType(t records.ColumnType) string {
	switch t {
	case records.Integer:
		return "BIGINT"
	case records.Date:
		return "DATE"
	case records.Decimal:
		return "DECIMAL(19, 4)"
	default:
		return "NVARCHAR(400)"
	}
}
