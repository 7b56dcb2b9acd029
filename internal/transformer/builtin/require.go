// Package builtin contains simple, reusable transformers used to normalize
// dimension extracts.
package builtin

import "salesmart/pkg/records"

// Require removes any record missing a value for one of the specified fields.
// Blank strings count as missing.
type Require struct {
	Fields []string
}

// Apply returns a new slice containing only records that have all required
// fields present and non-empty. The input slice is left untouched.
func (r Require) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if rec.Missing(f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
