package ddl

import (
	"fmt"
	"strings"

	gddl "salesmart/internal/ddl"
)

// BuildCreateTableSQL builds a deterministic Postgres CREATE TABLE statement:
//
//	CREATE TABLE IF NOT EXISTS "schema"."table" (
//	  "col1" TYPE NOT NULL,
//	  "col2" TYPE,
//	  PRIMARY KEY ("pk")
//	);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses("postgres", t, quoteIdent)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		gddl.QuoteFQN(t.FQN, quoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// BuildDropTableSQL drops fqn if it exists.
func BuildDropTableSQL(fqn string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", gddl.QuoteFQN(fqn, quoteIdent))
}

// BuildCreateSchemaSQL creates schema if it does not exist.
func BuildCreateSchemaSQL(schema string) string {
	return fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", quoteIdent(schema))
}

// quoteIdent quotes a single identifier segment for Postgres, e.g.:
//
//	quoteIdent(`dim_date`)   => `"dim_date"`
//	quoteIdent(`weird"name`) => `"weird""name"`
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
