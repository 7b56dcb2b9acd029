// Package records holds the row-level data model shared by extraction,
// transformation and persistence.
//
// A Record is a single flat row keyed by column name, mirroring what a SQL
// extract returns. Values keep whatever Go type the driver produced; the
// helpers in this package canonicalize them where the pipeline needs to
// compare values across sources (natural keys) or read them as text.
package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one row of an extract, keyed by column name. A missing column and
// a nil value are both treated as "missing".
type Record map[string]any

// Clone returns a shallow copy of r so callers can modify columns without
// touching the source record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Missing reports whether field is absent, nil, or an empty/blank string.
func (r Record) Missing(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []byte:
		return strings.TrimSpace(string(t)) == ""
	}
	return false
}

// Key returns the canonical natural-key form of v and whether v holds a key at
// all. Integer kinds and integral floats become int64; strings (and []byte)
// are trimmed and become int64 when they hold a base-10 integer so that "42"
// and 42 join. nil and blank strings are not keys.
func Key(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case int64:
		return t, true
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int16:
		return int64(t), true
	case int8:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return strconv.FormatUint(t, 10), true
		}
		return int64(t), true
	case uint:
		return Key(uint64(t))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, false
		}
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t), true
		}
		return t, true
	case float32:
		return Key(float64(t))
	case []byte:
		return Key(string(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		return s, true
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano), true
	default:
		return fmt.Sprint(t), true
	}
}

// Compare orders two canonical keys (as returned by Key). int64 keys sort
// numerically and before every other kind; strings sort lexically; anything
// else falls back to its printed form.
func Compare(a, b any) int {
	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	switch {
	case aInt && bInt:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aInt:
		return -1
	case bInt:
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Text returns v as trimmed text and whether it is non-missing. Non-string
// values are printed with fmt.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case []byte:
		s := strings.TrimSpace(string(t))
		return s, s != ""
	default:
		return fmt.Sprint(t), true
	}
}
