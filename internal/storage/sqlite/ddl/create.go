package ddl

import (
	"fmt"
	"strings"

	gddl "salesmart/internal/ddl"
)

// BuildCreateTableSQL renders CREATE TABLE IF NOT EXISTS for t.
//
// SQLite has no schemas in the Postgres sense; a qualified FQN such as
// "main.dim_date" names an attached database and is passed through quoted.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses("sqlite", t, quoteIdent)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		gddl.QuoteFQN(t.FQN, quoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// BuildDropTableSQL drops fqn when it exists.
func BuildDropTableSQL(fqn string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", gddl.QuoteFQN(fqn, quoteIdent))
}

// quoteIdent wraps id in double quotes and escapes embedded quotes.
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
