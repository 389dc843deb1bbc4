package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
)

// And combines boolean-valued fragments into a conjunction. Each predicate is
// parenthesized individually: (p1) AND (p2). Empty predicates are skipped; a
// single predicate passes through unchanged.
func And(predicates ...fragment.Fragment) fragment.Fragment {
	kept := keepNonEmpty(predicates)
	if len(kept) == 0 {
		return fragment.Empty()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	parts := make([]fragment.Fragment, len(kept))
	for i, p := range kept {
		parts[i] = fragment.Group(p)
	}
	return fragment.Join(parts, " AND ")
}

// Or combines boolean-valued fragments into a single disjunctive group:
// (p1 OR p2 OR ...). The group is parenthesized as a whole so it behaves as
// one predicate inside an enclosing conjunction.
func Or(predicates ...fragment.Fragment) fragment.Fragment {
	kept := keepNonEmpty(predicates)
	if len(kept) == 0 {
		return fragment.Empty()
	}
	return fragment.Group(fragment.Join(kept, " OR "))
}

// Not negates a predicate: NOT (p).
func Not(predicate fragment.Fragment) fragment.Fragment {
	if predicate.IsEmpty() {
		return predicate
	}
	return fragment.Concat(fragment.Text("NOT "), fragment.Group(predicate))
}

func keepNonEmpty(predicates []fragment.Fragment) []fragment.Fragment {
	kept := make([]fragment.Fragment, 0, len(predicates))
	for _, p := range predicates {
		if !p.IsEmpty() {
			kept = append(kept, p)
		}
	}
	return kept
}

// Compare renders a binary comparison between an expression and a bound value.
func Compare(left fragment.Fragment, operator string, value any) fragment.Fragment {
	return fragment.Concat(left, fragment.Text(" "+operator+" "), fragment.Value(value))
}

// Eq renders left = value.
func Eq(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, "=", value)
}

// Neq renders left <> value.
func Neq(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, "<>", value)
}

// Lt renders left < value.
func Lt(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, "<", value)
}

// Lte renders left <= value.
func Lte(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, "<=", value)
}

// Gt renders left > value.
func Gt(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, ">", value)
}

// Gte renders left >= value.
func Gte(left fragment.Fragment, value any) fragment.Fragment {
	return Compare(left, ">=", value)
}

// Like renders left LIKE pattern.
func Like(left fragment.Fragment, pattern string) fragment.Fragment {
	return Compare(left, "LIKE", pattern)
}

// In renders left IN (v1, v2, ...), with one placeholder per value. An empty
// value list renders the always-false predicate 1 = 0, which keeps the
// surrounding conjunction well-formed.
func In(left fragment.Fragment, values ...any) fragment.Fragment {
	if len(values) == 0 {
		return fragment.Text("1 = 0")
	}
	parts := make([]fragment.Fragment, len(values))
	for i, v := range values {
		parts[i] = fragment.Value(v)
	}
	return fragment.Concat(left, fragment.Text(" IN ("), fragment.Join(parts, ", "), fragment.Text(")"))
}

// NotIn renders left NOT IN (v1, v2, ...). An empty value list renders the
// always-true predicate 1 = 1.
func NotIn(left fragment.Fragment, values ...any) fragment.Fragment {
	if len(values) == 0 {
		return fragment.Text("1 = 1")
	}
	parts := make([]fragment.Fragment, len(values))
	for i, v := range values {
		parts[i] = fragment.Value(v)
	}
	return fragment.Concat(left, fragment.Text(" NOT IN ("), fragment.Join(parts, ", "), fragment.Text(")"))
}

// IsNull renders left IS NULL.
func IsNull(left fragment.Fragment) fragment.Fragment {
	return fragment.Concat(left, fragment.Text(" IS NULL"))
}

// IsNotNull renders left IS NOT NULL.
func IsNotNull(left fragment.Fragment) fragment.Fragment {
	return fragment.Concat(left, fragment.Text(" IS NOT NULL"))
}
