package odata

import (
	"sort"
	"strings"
)

// filterMode selects the boolean operator a FilterSpec joins its fragments with.
type filterMode int

const (
	filterUnset filterMode = iota
	filterAll              // conjunctive, order-preserving
	filterAny              // disjunctive, order-independent
)

// FilterSpec is a set of filter fragment strings together with the boolean
// operator that combines them. Construct one with AllOf or AnyOf; the zero
// value means "no filter".
//
// Fragments are embedded verbatim (whitespace-trimmed only), so anything the
// filter subpackage produces, or any hand-written OData filter expression,
// is a valid fragment.
type FilterSpec struct {
	mode      filterMode
	fragments []string
}

// AllOf combines filter fragments conjunctively: a row matches only if every
// fragment matches. Fragment order is preserved in the compiled output.
func AllOf(fragments ...string) FilterSpec {
	return FilterSpec{mode: filterAll, fragments: trimmed(fragments)}
}

// AnyOf combines filter fragments disjunctively: a row matches if at least
// one fragment matches. Fragments are sorted during compilation, so two
// AnyOf specs with the same fragments in any order compile identically.
func AnyOf(fragments ...string) FilterSpec {
	return FilterSpec{mode: filterAny, fragments: trimmed(fragments)}
}

// Len returns the number of fragments in the spec.
func (s FilterSpec) Len() int {
	return len(s.fragments)
}

// IsZero reports whether the spec holds no fragments.
func (s FilterSpec) IsZero() bool {
	return len(s.fragments) == 0
}

// Fragments returns a copy of the spec's fragments in their stored order.
func (s FilterSpec) Fragments() []string {
	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Expression joins the fragments into a single filter expression:
// " and " for AllOf, " or " for AnyOf. AnyOf fragments are sorted first.
// Returns "" for an empty spec.
func (s FilterSpec) Expression() string {
	if len(s.fragments) == 0 {
		return ""
	}

	fragments := s.fragments
	operator := " and "
	if s.mode == filterAny {
		fragments = make([]string, len(s.fragments))
		copy(fragments, s.fragments)
		sort.Strings(fragments)
		operator = " or "
	}

	return strings.Join(fragments, operator)
}

func trimmed(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" {
			out = append(out, fragment)
		}
	}
	return out
}
