// Package transformer defines the record-set transformation contract used by
// the dimension builders. Every Transformer is a pure function: it returns a
// new slice and never mutates the records it receives, so raw extracts stay
// immutable while several dimensions are built concurrently.
package transformer

import "salesmart/pkg/records"

type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// Func adapts an ordinary function to the Transformer interface.
type Func func([]records.Record) []records.Record

func (f Func) Apply(in []records.Record) []records.Record { return f(in) }
