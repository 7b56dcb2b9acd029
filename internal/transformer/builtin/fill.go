package builtin

import "salesmart/pkg/records"

// FillMissing replaces missing text values with a sentinel. Present values
// are rendered as text, so after Apply every listed field holds a non-empty
// string.
type FillMissing struct {
	Fields []string
	Value  string
}

func (f FillMissing) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, r := range in {
		c := r.Clone()
		for _, field := range f.Fields {
			if s, ok := records.Text(c[field]); ok {
				c[field] = s
			} else {
				c[field] = f.Value
			}
		}
		out[i] = c
	}
	return out
}
