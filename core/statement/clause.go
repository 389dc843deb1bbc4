package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
)

// JoinType specifies the type of join to be performed. Outer joins are always
// written with the explicit OUTER keyword.
type JoinType string

const (
	JoinInner      JoinType = "inner"
	JoinLeftOuter  JoinType = "left"
	JoinRightOuter JoinType = "right"
	JoinFullOuter  JoinType = "full"
)

// keyword returns the SQL join keyword for the join type.
func (j JoinType) keyword() string {
	switch j {
	case JoinLeftOuter:
		return "LEFT OUTER JOIN"
	case JoinRightOuter:
		return "RIGHT OUTER JOIN"
	case JoinFullOuter:
		return "FULL OUTER JOIN"
	default:
		return "INNER JOIN"
	}
}

// Direction specifies the direction for an ORDER BY term.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// OrderTerm pairs an expression with a sort direction. Determinism beyond the
// specified terms is the database's responsibility.
type OrderTerm struct {
	Expr      fragment.Fragment
	Direction Direction
}

// Asc builds an ascending order term.
func Asc(expr fragment.Fragment) OrderTerm {
	return OrderTerm{Expr: expr, Direction: Ascending}
}

// Desc builds a descending order term.
func Desc(expr fragment.Fragment) OrderTerm {
	return OrderTerm{Expr: expr, Direction: Descending}
}

// windowDef is one named window: WINDOW name AS (PARTITION BY ... ORDER BY ...).
type windowDef struct {
	name        string
	partitionBy []fragment.Fragment
	orderBy     []OrderTerm
}

// joinClause carries one join's type, target, and condition.
type joinClause struct {
	kind   JoinType
	target fragment.Fragment
	on     fragment.Fragment
}

// cteClause is one WITH entry.
type cteClause struct {
	name  string
	query fragment.Fragment
}

// setOp is a UNION/INTERSECT/EXCEPT continuation.
type setOp struct {
	keyword string
	query   fragment.Fragment
}

// renderOrderTerms renders "expr DIR, expr DIR" for an ORDER BY or window
// specification body.
func renderOrderTerms(terms []OrderTerm) fragment.Fragment {
	parts := make([]fragment.Fragment, len(terms))
	for i, term := range terms {
		parts[i] = fragment.Concat(term.Expr, fragment.Text(" "+string(term.Direction)))
	}
	return fragment.Join(parts, ", ")
}

// renderWindowSpec renders the parenthesized body of a window definition or an
// inline OVER specification.
func renderWindowSpec(partitionBy []fragment.Fragment, orderBy []OrderTerm) fragment.Fragment {
	var inner []fragment.Fragment
	if len(partitionBy) > 0 {
		inner = append(inner, fragment.Concat(fragment.Text("PARTITION BY "), fragment.Join(partitionBy, ", ")))
	}
	if len(orderBy) > 0 {
		inner = append(inner, fragment.Concat(fragment.Text("ORDER BY "), renderOrderTerms(orderBy)))
	}
	return fragment.Concat(fragment.Text("("), fragment.Join(inner, " "), fragment.Text(")"))
}

// renderJoins renders the join clauses in declaration order.
func renderJoins(joins []joinClause) fragment.Fragment {
	parts := make([]fragment.Fragment, len(joins))
	for i, j := range joins {
		parts[i] = fragment.Concat(
			fragment.Text(j.kind.keyword()+" "),
			j.target,
			fragment.Text(" ON "),
			j.on,
		)
	}
	return fragment.Join(parts, " ")
}

// qualifiedTarget builds the quoted join or from target, with optional schema
// qualification and alias.
func qualifiedTarget(dialect fragment.Dialect, schemaName, table, alias string) fragment.Fragment {
	name := dialect.QuoteIdentifier(table)
	if schemaName != "" {
		name = dialect.QuoteIdentifier(schemaName) + "." + name
	}
	if alias != "" {
		name += " AS " + dialect.QuoteIdentifier(alias)
	}
	return fragment.Text(name)
}
