// Package usage records the assumptions an estimate silently made.
// Guarded divisions and zero-priced materials never fail a calculation,
// so the tracker is how callers find out they happened.
package usage

import (
	"fmt"
	"sort"
)

// Kind classifies a recorded assumption
type Kind int

const (
	// KindClamped means a divisor was raised to its floor
	KindClamped Kind = iota

	// KindUnmatched means a material had no catalog price and cost 0
	KindUnmatched

	// KindDuplicate means a catalog name appeared more than once; the last row won
	KindDuplicate

	// KindUnpriceable means the margin left no wholesale price
	KindUnpriceable
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindClamped:
		return "clamped"
	case KindUnmatched:
		return "unmatched_material"
	case KindDuplicate:
		return "duplicate_material"
	case KindUnpriceable:
		return "unpriceable"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Assumption is one recorded fallback
type Assumption struct {
	Kind   Kind   `json:"kind"`
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// String renders the assumption for terminal output
func (a Assumption) String() string {
	return fmt.Sprintf("%s: %s", a.Field, a.Detail)
}

// Tracker collects assumptions for one estimate
type Tracker struct {
	assumptions []Assumption
	seen        map[string]bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]bool)}
}

func (t *Tracker) record(a Assumption) {
	key := a.Kind.String() + "|" + a.Field + "|" + a.Detail
	if t.seen[key] {
		return
	}
	t.seen[key] = true
	t.assumptions = append(t.assumptions, a)
}

// ClampedPieces records a piece-count divisor below 1
func (t *Tracker) ClampedPieces(field string, value int) {
	if value >= 1 {
		return
	}
	t.record(Assumption{
		Kind:   KindClamped,
		Field:  field,
		Detail: fmt.Sprintf("%d treated as 1", value),
	})
}

// ClampedFloat records a float divisor raised to floor
func (t *Tracker) ClampedFloat(field string, value, floor float64) {
	if value >= floor {
		return
	}
	t.record(Assumption{
		Kind:   KindClamped,
		Field:  field,
		Detail: fmt.Sprintf("%g treated as %g", value, floor),
	})
}

// ZeroDivisor records a divisor of zero that made its quotient zero
func (t *Tracker) ZeroDivisor(field, result string) {
	t.record(Assumption{
		Kind:   KindClamped,
		Field:  field,
		Detail: "is 0, " + result + " is 0",
	})
}

// Unmatched records materials priced at zero
func (t *Tracker) Unmatched(source string, names []string) {
	for _, n := range names {
		t.record(Assumption{
			Kind:   KindUnmatched,
			Field:  source,
			Detail: fmt.Sprintf("%q has no catalog price, costed at 0", n),
		})
	}
}

// Duplicates records catalog keys that appeared more than once
func (t *Tracker) Duplicates(keys []string) {
	for _, k := range keys {
		t.record(Assumption{
			Kind:   KindDuplicate,
			Field:  "catalog",
			Detail: fmt.Sprintf("%q listed more than once, last price used", k),
		})
	}
}

// Unpriceable records a margin that leaves no wholesale price
func (t *Tracker) Unpriceable(marginPct float64) {
	t.record(Assumption{
		Kind:   KindUnpriceable,
		Field:  "wholesale_margin_pct",
		Detail: fmt.Sprintf("%g%% margin cannot recover cost", marginPct),
	})
}

// All returns the assumptions ordered by kind, then field, keeping insertion order within a field
func (t *Tracker) All() []Assumption {
	out := make([]Assumption, len(t.assumptions))
	copy(out, t.assumptions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// OfKind returns the assumptions of one kind
func (t *Tracker) OfKind(k Kind) []Assumption {
	var out []Assumption
	for _, a := range t.All() {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// Count returns the number of assumptions
func (t *Tracker) Count() int {
	return len(t.assumptions)
}
