package builtin

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salesmart/pkg/records"
)

// DateLayouts are tried in order when coercing text to a date.
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Coerce converts text (and []byte) values into typed values. Types maps a
// field to one of: int, bool, date, decimal, string. Values that are already
// typed, or text that fails to parse, are left as they are so later stages
// can decide what a bad value means.
type Coerce struct {
	Types   map[string]string
	Layouts []string
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	layouts := c.Layouts
	if len(layouts) == 0 {
		layouts = DateLayouts
	}
	out := make([]records.Record, len(in))
	for i, r := range in {
		rec := r.Clone()
		for field, typ := range c.Types {
			s, ok := asString(rec[field])
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				rec[field] = nil
				continue
			}
			switch typ {
			case "int":
				if n, err := strconv.ParseInt(s, 10, 64); err == nil {
					rec[field] = n
				}
			case "bool":
				if b, err := strconv.ParseBool(s); err == nil {
					rec[field] = b
				}
			case "date":
				if t, ok := ParseDate(s, layouts); ok {
					rec[field] = t
				}
			case "decimal":
				if d, err := decimal.NewFromString(s); err == nil {
					rec[field] = d
				}
			case "string":
				rec[field] = s
			}
		}
		out[i] = rec
	}
	return out
}

// ParseDate parses s with the first matching layout.
func ParseDate(s string, layouts []string) (time.Time, bool) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
