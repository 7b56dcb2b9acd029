package records

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// ColumnType is the logical type of a table column. Storage backends map it
// to their own SQL types when creating tables.
type ColumnType int

const (
	Integer ColumnType = iota
	TextType
	Date
	Decimal
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case TextType:
		return "text"
	case Date:
		return "date"
	case Decimal:
		return "decimal"
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// Column describes one output column.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Nullable   bool
}

// Table is a named, typed, ordered row set. Rows are aligned to Columns.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnNames returns the column names in declared order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Index returns the position of the named column or -1.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Values returns every value of the named column in row order, or nil when
// the column does not exist.
func (t Table) Values(name string) []any {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// KeySet returns the canonical keys present in the named column.
func (t Table) KeySet(name string) map[any]struct{} {
	vals := t.Values(name)
	set := make(map[any]struct{}, len(vals))
	for _, v := range vals {
		if k, ok := Key(v); ok {
			set[k] = struct{}{}
		}
	}
	return set
}

// Fingerprint hashes the table's columns and rows with xxh3. Two runs over the
// same extract produce the same fingerprint, which makes unchanged reloads
// easy to spot in logs.
func (t Table) Fingerprint() uint64 {
	h := xxh3.New()
	for _, c := range t.Columns {
		_, _ = h.WriteString(c.Name)
		_, _ = h.WriteString("\x1f")
	}
	_, _ = h.WriteString("\x1e")
	for _, row := range t.Rows {
		for _, v := range row {
			_, _ = h.WriteString(formatCell(v))
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString("\x1e")
	}
	return h.Sum64()
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "\x00"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
