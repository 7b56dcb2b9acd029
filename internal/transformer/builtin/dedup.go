package builtin

import (
	"sort"
	"strings"

	"salesmart/pkg/records"
)

const (
	PolicyKeepFirst    = "keep-first"
	PolicyKeepLast     = "keep-last"
	PolicyMostComplete = "most-complete"
)

// DeDup collapses duplicate records by a configured key and chooses a winner
// according to a policy:
//
//   - "keep-first"   : keep the earliest occurrence (dimension builds use this)
//   - "keep-last"    : keep the latest occurrence (default)
//   - "most-complete": keep the record with the most non-empty fields;
//     ties break by "keep-last"
//
// Keys are compared in canonical natural-key form (records.Key), so an int
// 42 and an int64 42 coming from different drivers are the same key. Records
// whose key cannot be built pass through after the winners, in input order.
type DeDup struct {
	// Keys are the field names that form the business key.
	Keys []string

	// Policy selects the winner among duplicates (default "keep-last").
	Policy string

	// PreferFields add weight to "most-complete" scoring when non-empty.
	PreferFields []string
}

type dedupKey [4]any

type slot struct {
	rec   records.Record
	index int
	score int
}

// Apply returns a new slice containing only the winning record for each key,
// ordered by the input position of the winner.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = PolicyKeepLast
	}

	prefer := make(map[string]struct{}, len(d.PreferFields))
	for _, f := range d.PreferFields {
		prefer[f] = struct{}{}
	}

	winners := make(map[any]slot, len(in))
	var passthrough []records.Record

	for i, r := range in {
		key, ok := d.keyOf(r)
		if !ok {
			passthrough = append(passthrough, r)
			continue
		}
		switch policy {
		case PolicyKeepFirst:
			if _, exists := winners[key]; !exists {
				winners[key] = slot{rec: r, index: i}
			}
		case PolicyMostComplete:
			s := slot{rec: r, index: i, score: completeness(r, prefer)}
			if prev, exists := winners[key]; !exists || s.score >= prev.score {
				winners[key] = s
			}
		default:
			winners[key] = slot{rec: r, index: i}
		}
	}

	slots := make([]slot, 0, len(winners))
	for _, s := range winners {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].index < slots[j].index })

	out := make([]records.Record, 0, len(slots)+len(passthrough))
	for _, s := range slots {
		out = append(out, s.rec)
	}
	return append(out, passthrough...)
}

// keyOf builds a comparable key from up to four key fields; longer keys are
// folded into a joined string.
func (d DeDup) keyOf(r records.Record) (any, bool) {
	if len(d.Keys) == 1 {
		return records.Key(r[d.Keys[0]])
	}
	parts := make([]any, 0, len(d.Keys))
	for _, f := range d.Keys {
		k, ok := records.Key(r[f])
		if !ok {
			return nil, false
		}
		parts = append(parts, k)
	}
	if len(parts) <= len(dedupKey{}) {
		var k dedupKey
		copy(k[:], parts)
		return k, true
	}
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		s, _ := records.Text(p)
		b.WriteString(s)
	}
	return b.String(), true
}

// completeness counts non-empty fields; preferred fields add a bonus point.
func completeness(r records.Record, prefer map[string]struct{}) int {
	score, bonus := 0, 0
	for k := range r {
		if r.Missing(k) {
			continue
		}
		score++
		if _, ok := prefer[k]; ok {
			bonus++
		}
	}
	return score*10 + bonus
}
