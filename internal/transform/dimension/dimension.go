// Package dimension turns raw entity extracts into clean dimension tables.
//
// Every dimension goes through the same routine, parametrized by a Spec: drop
// rows without a natural key, keep the first row per key, replace missing text
// with the locale's "unknown" sentinel, map boolean flags onto the locale's
// yes/no/unknown labels, then project onto the declared columns.
package dimension

import (
	"fmt"

	"salesmart/internal/locale"
	"salesmart/internal/transformer"
	"salesmart/internal/transformer/builtin"
	"salesmart/pkg/records"
)

// Spec describes one dimension.
type Spec struct {
	// Table is the persisted table name.
	Table string
	// Key is the natural-key column. It is also the first output column.
	Key string
	// Text columns never come out missing.
	Text []string
	// Flags are boolean columns rendered as yes/no/unknown labels.
	Flags []string
	// Refs are foreign natural keys carried as-is (canonicalized, may be nil).
	Refs []string
	// Columns is the output order. Every name must be Key or appear in Text,
	// Flags or Refs.
	Columns []string
}

// Validate checks that every output column has a rule.
func (s Spec) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("dimension: table name is required")
	}
	if s.Key == "" {
		return fmt.Errorf("dimension %s: key column is required", s.Table)
	}
	known := map[string]bool{s.Key: true}
	for _, group := range [][]string{s.Text, s.Flags, s.Refs} {
		for _, c := range group {
			if known[c] {
				return fmt.Errorf("dimension %s: column %q declared twice", s.Table, c)
			}
			known[c] = true
		}
	}
	if len(s.Columns) == 0 || s.Columns[0] != s.Key {
		return fmt.Errorf("dimension %s: first column must be the key %q", s.Table, s.Key)
	}
	for _, c := range s.Columns {
		if !known[c] {
			return fmt.Errorf("dimension %s: column %q has no rule", s.Table, c)
		}
	}
	return nil
}

// Schema returns the typed output columns.
func (s Spec) Schema() []records.Column {
	kinds := make(map[string]records.Column, len(s.Columns))
	kinds[s.Key] = records.Column{Name: s.Key, Type: records.Integer, PrimaryKey: true}
	for _, c := range s.Text {
		kinds[c] = records.Column{Name: c, Type: records.TextType}
	}
	for _, c := range s.Flags {
		kinds[c] = records.Column{Name: c, Type: records.TextType}
	}
	for _, c := range s.Refs {
		kinds[c] = records.Column{Name: c, Type: records.Integer, Nullable: true}
	}
	out := make([]records.Column, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = kinds[c]
	}
	return out
}

// Chain returns the record transformers that implement the normalization
// contract for this spec.
func (s Spec) Chain(names locale.Names) transformer.Chain {
	return transformer.Chain{
		builtin.Normalize{Fields: s.Text},
		builtin.Require{Fields: []string{s.Key}},
		builtin.DeDup{Keys: []string{s.Key}, Policy: builtin.PolicyKeepFirst},
		builtin.FillMissing{Fields: s.Text, Value: names.Unknown},
		builtin.FlagLabel{Fields: s.Flags, Yes: names.Yes, No: names.No, Unknown: names.Unknown},
	}
}

// Build normalizes raw into the dimension table described by spec. raw is
// not modified.
func Build(spec Spec, raw []records.Record, names locale.Names) (records.Table, error) {
	if err := spec.Validate(); err != nil {
		return records.Table{}, err
	}
	clean := spec.Chain(names).Apply(raw)

	refs := make(map[string]bool, len(spec.Refs))
	for _, c := range spec.Refs {
		refs[c] = true
	}

	rows := make([][]any, len(clean))
	for i, r := range clean {
		row := make([]any, len(spec.Columns))
		for j, c := range spec.Columns {
			switch {
			case c == spec.Key:
				row[j], _ = records.Key(r[c])
			case refs[c]:
				if k, ok := records.Key(r[c]); ok {
					row[j] = k
				}
			default:
				row[j] = r[c]
			}
		}
		rows[i] = row
	}
	return records.Table{Name: spec.Table, Columns: spec.Schema(), Rows: rows}, nil
}
