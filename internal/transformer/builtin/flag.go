package builtin

import "salesmart/pkg/records"

// FlagLabel turns boolean flags into a three-valued text label. true maps to
// Yes, false to No, and everything else (nil, text, other numbers) to
// Unknown. Integer 1/0 also count, since SQLite returns bit columns that way.
// Text spellings are typed earlier by Coerce and are not guessed here.
type FlagLabel struct {
	Fields  []string
	Yes     string
	No      string
	Unknown string
}

func (f FlagLabel) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, r := range in {
		c := r.Clone()
		for _, field := range f.Fields {
			c[field] = f.Label(c[field])
		}
		out[i] = c
	}
	return out
}

// Label maps a single value.
func (f FlagLabel) Label(v any) string {
	b, ok := asBool(v)
	switch {
	case !ok:
		return f.Unknown
	case b:
		return f.Yes
	default:
		return f.No
	}
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int64:
		return boolFromInt(t)
	case int:
		return boolFromInt(int64(t))
	case int32:
		return boolFromInt(int64(t))
	case uint8:
		return boolFromInt(int64(t))
	}
	return false, false
}

func boolFromInt(n int64) (bool, bool) {
	switch n {
	case 0:
		return false, true
	case 1:
		return true, true
	}
	return false, false
}
