package builtin

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"salesmart/pkg/records"
)

const nbsp = "\u00a0"

// Normalize cleans text values: NO-BREAK SPACE becomes a plain space, the
// text is NFC-normalized and surrounding whitespace is trimmed. Fields limits
// the columns touched; empty means every string column. []byte values from
// drivers that return raw bytes are converted to string first.
type Normalize struct {
	Fields []string
}

func (n Normalize) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, r := range in {
		c := r.Clone()
		if len(n.Fields) == 0 {
			for k, v := range c {
				if s, ok := asString(v); ok {
					c[k] = cleanText(s)
				}
			}
		} else {
			for _, f := range n.Fields {
				if s, ok := asString(c[f]); ok {
					c[f] = cleanText(s)
				}
			}
		}
		out[i] = c
	}
	return out
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	return "", false
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, nbsp, " ")
	return strings.TrimSpace(norm.NFC.String(s))
}
