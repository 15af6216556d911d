package toon

import "sort"

// ============================================================
// Uniformity Classifier
// ============================================================
//
// Decides whether an array qualifies for the tabular row layout. The
// result is an explicit tagged decision so the encoder branches on an
// exhaustive switch rather than scattered conditionals.

// NonTabularReason explains why an array fell back to the generic layout.
type NonTabularReason uint8

const (
	ReasonTabular NonTabularReason = iota
	ReasonEmpty
	ReasonNonObjectElement
	ReasonKeyMismatch
	ReasonNestedCell
)

// String returns the reason name.
func (r NonTabularReason) String() string {
	switch r {
	case ReasonTabular:
		return "tabular"
	case ReasonEmpty:
		return "empty"
	case ReasonNonObjectElement:
		return "non-object element"
	case ReasonKeyMismatch:
		return "key mismatch"
	case ReasonNestedCell:
		return "nested cell"
	default:
		return "unknown"
	}
}

// TableDecision is the classifier verdict for one array.
type TableDecision struct {
	Tabular bool
	// Columns is the shared key set in first-element order. Valid only
	// when Tabular is true.
	Columns []string
	Reason  NonTabularReason
}

// nonTabular builds a fallback decision.
func nonTabular(reason NonTabularReason) TableDecision {
	return TableDecision{Tabular: false, Reason: reason}
}

// classifyTable decides whether elems can be rendered as header-plus-rows.
//
// Eligibility requires: a non-empty array, every element an object, every
// element sharing one key set, and every cell a scalar. Any violation
// disqualifies the whole array.
func classifyTable(elems []*Value) TableDecision {
	if len(elems) == 0 {
		return nonTabular(ReasonEmpty)
	}

	first := elems[0]
	if first.Kind() != KindObject {
		return nonTabular(ReasonNonObjectElement)
	}

	columns := make([]string, 0, len(first.objVal))
	for _, f := range first.objVal {
		columns = append(columns, f.Key)
	}
	want := sortedCopy(columns)

	for _, elem := range elems {
		if elem.Kind() != KindObject {
			return nonTabular(ReasonNonObjectElement)
		}
		if len(elem.objVal) != len(want) {
			return nonTabular(ReasonKeyMismatch)
		}
		keys := make([]string, 0, len(elem.objVal))
		for _, f := range elem.objVal {
			keys = append(keys, f.Key)
			if !f.Value.isScalar() {
				return nonTabular(ReasonNestedCell)
			}
		}
		if !equalStrings(sortedCopy(keys), want) {
			return nonTabular(ReasonKeyMismatch)
		}
	}

	return TableDecision{Tabular: true, Columns: columns, Reason: ReasonTabular}
}

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
