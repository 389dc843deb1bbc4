package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
)

// Call emits a plain function invocation: NAME(arg1, arg2, ...). Arguments
// are fragments, so both column references and bound values compose freely.
func Call(name string, args ...fragment.Fragment) fragment.Fragment {
	return fragment.Concat(
		fragment.Text(name+"("),
		fragment.Join(args, ", "),
		fragment.Text(")"),
	)
}

// CountAll emits COUNT(*).
func CountAll() fragment.Fragment {
	return fragment.Text("COUNT(*)")
}

// FunctionCall is the generic emitter behind aggregate and window function
// wrappers. It renders NAME([DISTINCT] args) [FILTER (WHERE ...)] [OVER ...]
// with each modifier optional.
type FunctionCall struct {
	name      string
	args      []fragment.Fragment
	distinct  bool
	filter    fragment.Fragment
	over      fragment.Fragment
	hasWindow bool
}

// Aggregate starts an aggregate or window function call.
func Aggregate(name string, args ...fragment.Fragment) *FunctionCall {
	return &FunctionCall{name: name, args: args}
}

// Distinct adds the DISTINCT qualifier to the argument list.
func (c *FunctionCall) Distinct() *FunctionCall {
	c.distinct = true
	return c
}

// Filter attaches a FILTER (WHERE predicate) clause.
func (c *FunctionCall) Filter(predicate fragment.Fragment) *FunctionCall {
	c.filter = predicate
	return c
}

// Over attaches an OVER clause referencing a named window registered on the
// enclosing SELECT.
func (c *FunctionCall) Over(dialect fragment.Dialect, window string) *FunctionCall {
	c.over = fragment.Text(dialect.QuoteIdentifier(window))
	c.hasWindow = true
	return c
}

// OverSpec attaches an inline OVER (PARTITION BY ... ORDER BY ...) clause.
func (c *FunctionCall) OverSpec(partitionBy []fragment.Fragment, orderBy []OrderTerm) *FunctionCall {
	c.over = renderWindowSpec(partitionBy, orderBy)
	c.hasWindow = true
	return c
}

// Fragment renders the call.
func (c *FunctionCall) Fragment() fragment.Fragment {
	frag := fragment.Text(c.name + "(")
	if c.distinct {
		frag = frag.Append(fragment.Text("DISTINCT "))
	}
	frag = frag.Append(fragment.Join(c.args, ", "), fragment.Text(")"))

	if !c.filter.IsEmpty() {
		frag = frag.Append(fragment.Text(" FILTER (WHERE "), c.filter, fragment.Text(")"))
	}
	if c.hasWindow {
		frag = frag.Append(fragment.Text(" OVER "), c.over)
	}
	return frag
}

// As aliases the rendered call: expr AS alias.
func As(expr fragment.Fragment, dialect fragment.Dialect, alias string) fragment.Fragment {
	return fragment.Concat(expr, fragment.Text(" AS "+dialect.QuoteIdentifier(alias)))
}
