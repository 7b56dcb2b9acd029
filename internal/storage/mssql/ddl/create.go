// Package ddl provides MSSQL-specific helpers for generating CREATE and DROP
// TABLE statements from the generic ddl.TableDef model.
//
// T-SQL has no CREATE TABLE IF NOT EXISTS, so statements are wrapped in
// IF OBJECT_ID(...) guards. Identifiers use [bracket] quoting.
package ddl

import (
	"fmt"
	"strings"

	gddl "salesmart/internal/ddl"
)

// BuildCreateTableSQL returns a T-SQL script that creates the table if it
// does not already exist:
//
//	IF OBJECT_ID(N'[schema].[table]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [schema].[table] (
//	    [col1] TYPE NOT NULL,
//	    [col2] TYPE,
//	    PRIMARY KEY ([pk])
//	  );
//	END;
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses("mssql", t, quoteIdent)
	if err != nil {
		return "", err
	}
	fqn := gddl.QuoteFQN(t.FQN, quoteIdent)
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		escapeLiteral(fqn),
		fqn,
		strings.Join(cols, ",\n    "),
	), nil
}

// BuildDropTableSQL drops fqn when it exists.
func BuildDropTableSQL(fqn string) string {
	q := gddl.QuoteFQN(fqn, quoteIdent)
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NOT NULL DROP TABLE %s;", escapeLiteral(q), q)
}

// quoteIdent quotes a single identifier segment using bracket syntax,
// escaping any closing brackets.
//
//	name      -> [name]
//	weird]id  -> [weird]]id]
func quoteIdent(id string) string {
	return "[" + strings.ReplaceAll(id, "]", "]]") + "]"
}

func escapeLiteral(s string) string { return strings.ReplaceAll(s, "'", "''") }
