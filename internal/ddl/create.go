// Package ddl defines a small, backend-agnostic model for SQL DDL and the
// shared pieces of CREATE TABLE rendering.
//
// Backend packages (internal/storage/<kind>/ddl) supply their own identifier
// quoting and statement wrapper (IF NOT EXISTS, OBJECT_ID guards) and call
// ColumnClauses for the part every dialect renders the same way.
package ddl

import (
	"fmt"
	"strings"
)

// QuoteFunc quotes one identifier segment.
type QuoteFunc func(string) string

// ColumnClauses validates t and renders its column definitions followed by a
// PRIMARY KEY clause when any column is part of the key. Each column is
// rendered as:
//
//	<quoted name> <SQLType> [NOT NULL]
//
// Primary-key columns are always NOT NULL. dialect prefixes error messages.
func ColumnClauses(dialect string, t TableDef, quote QuoteFunc) ([]string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return nil, fmt.Errorf("%s ddl: table FQN must not be empty", dialect)
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%s ddl: at least one column is required", dialect)
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, 1)
	seen := make(map[string]bool, len(t.Columns))

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%s ddl: column with empty name in table %s", dialect, fqn)
		}
		if seen[name] {
			return nil, fmt.Errorf("%s ddl: duplicate column %s in table %s", dialect, name, fqn)
		}
		seen[name] = true
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return nil, fmt.Errorf("%s ddl: column %s missing SQLType", dialect, name)
		}

		var sb strings.Builder
		sb.WriteString(quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quote(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return cols, nil
}

// QuoteFQN quotes each segment of a possibly schema-qualified name. Empty
// segments are ignored.
func QuoteFQN(fqn string, quote QuoteFunc) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quote(p))
	}
	return strings.Join(out, ".")
}
