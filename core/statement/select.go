package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
)

// SelectBuilder assembles a SELECT statement through method chaining. Clauses
// are emitted in the fixed textual order WITH, SELECT, DISTINCT ON, select
// list, FROM, joins, WHERE, GROUP BY, HAVING, WINDOW, ORDER BY, LIMIT,
// OFFSET, set-operation continuations; omitted clauses contribute neither
// keyword nor fragment.
type SelectBuilder struct {
	table      *Table
	ctes       []cteClause
	distinctOn []fragment.Fragment
	columns    []fragment.Fragment
	from       fragment.Fragment
	joins      []joinClause
	where      []fragment.Fragment
	groupBy    []fragment.Fragment
	having     []fragment.Fragment
	windows    []windowDef
	orderBy    []OrderTerm
	limit      *int
	offset     *int
	setOps     []setOp
	shape      ResultShape
}

// Select starts a SELECT builder over the table. With no columns the select
// list defaults to every column in descriptor order, which keeps positional
// decoding aligned with the descriptor.
func (t *Table) Select(columns ...fragment.Fragment) *SelectBuilder {
	return &SelectBuilder{
		table:   t,
		columns: columns,
		from:    t.Name(),
		shape:   ShapeMany,
	}
}

// With prepends a common table expression. CTEs are emitted in registration
// order.
func (b *SelectBuilder) With(name string, query fragment.Fragment) *SelectBuilder {
	b.ctes = append(b.ctes, cteClause{name: name, query: query})
	return b
}

// DistinctOn adds expressions to the DISTINCT ON list, emitted verbatim inside
// parentheses in registration order.
func (b *SelectBuilder) DistinctOn(exprs ...fragment.Fragment) *SelectBuilder {
	b.distinctOn = append(b.distinctOn, exprs...)
	return b
}

// FromSubquery replaces the FROM target with a parenthesized subquery.
func (b *SelectBuilder) FromSubquery(sub fragment.Fragment, alias string) *SelectBuilder {
	b.from = fragment.Concat(
		fragment.Group(sub),
		fragment.Text(" AS "+b.table.dialect.QuoteIdentifier(alias)),
	)
	return b
}

// Join adds a join against a table in the default schema.
func (b *SelectBuilder) Join(kind JoinType, table, alias string, on fragment.Fragment) *SelectBuilder {
	return b.JoinSchema(kind, "", table, alias, on)
}

// JoinSchema adds a join against a schema-qualified table.
func (b *SelectBuilder) JoinSchema(kind JoinType, schemaName, table, alias string, on fragment.Fragment) *SelectBuilder {
	b.joins = append(b.joins, joinClause{
		kind:   kind,
		target: qualifiedTarget(b.table.dialect, schemaName, table, alias),
		on:     on,
	})
	return b
}

// Where adds predicates to the WHERE conjunction. Each call appends further
// conjuncts; all accumulated predicates are combined with AND.
func (b *SelectBuilder) Where(predicates ...fragment.Fragment) *SelectBuilder {
	b.where = append(b.where, predicates...)
	return b
}

// OrWhere adds a single disjunctive group (p1 OR p2 OR ...) as one conjunct of
// the WHERE clause.
func (b *SelectBuilder) OrWhere(predicates ...fragment.Fragment) *SelectBuilder {
	b.where = append(b.where, Or(predicates...))
	return b
}

// GroupBy adds expressions to the GROUP BY list.
func (b *SelectBuilder) GroupBy(exprs ...fragment.Fragment) *SelectBuilder {
	b.groupBy = append(b.groupBy, exprs...)
	return b
}

// Having adds predicates to the HAVING conjunction.
func (b *SelectBuilder) Having(predicates ...fragment.Fragment) *SelectBuilder {
	b.having = append(b.having, predicates...)
	return b
}

// OrHaving adds a disjunctive group as one conjunct of the HAVING clause.
func (b *SelectBuilder) OrHaving(predicates ...fragment.Fragment) *SelectBuilder {
	b.having = append(b.having, Or(predicates...))
	return b
}

// Window registers a named window. Windows are deduplicated by name: a second
// registration under an existing name is ignored, so multiple clause-building
// calls may reference the same window freely.
func (b *SelectBuilder) Window(name string, partitionBy []fragment.Fragment, orderBy []OrderTerm) *SelectBuilder {
	for _, w := range b.windows {
		if w.name == name {
			return b
		}
	}
	b.windows = append(b.windows, windowDef{name: name, partitionBy: partitionBy, orderBy: orderBy})
	return b
}

// OrderBy appends order terms.
func (b *SelectBuilder) OrderBy(terms ...OrderTerm) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit sets the LIMIT, bound as a parameter.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = &limit
	return b
}

// Offset sets the OFFSET, bound as a parameter.
func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = &offset
	return b
}

// Union appends a UNION [ALL] continuation.
func (b *SelectBuilder) Union(all bool, query fragment.Fragment) *SelectBuilder {
	keyword := "UNION"
	if all {
		keyword = "UNION ALL"
	}
	b.setOps = append(b.setOps, setOp{keyword: keyword, query: query})
	return b
}

// Intersect appends an INTERSECT continuation.
func (b *SelectBuilder) Intersect(query fragment.Fragment) *SelectBuilder {
	b.setOps = append(b.setOps, setOp{keyword: "INTERSECT", query: query})
	return b
}

// Except appends an EXCEPT continuation.
func (b *SelectBuilder) Except(query fragment.Fragment) *SelectBuilder {
	b.setOps = append(b.setOps, setOp{keyword: "EXCEPT", query: query})
	return b
}

// One narrows the expected result shape to zero-or-one row.
func (b *SelectBuilder) One() *SelectBuilder {
	b.shape = ShapeOptional
	return b
}

// Fragment assembles the SELECT fragment without wrapping it in a Statement.
// Useful for subqueries and CTE bodies.
func (b *SelectBuilder) Fragment() fragment.Fragment {
	var parts []fragment.Fragment

	if len(b.ctes) > 0 {
		entries := make([]fragment.Fragment, len(b.ctes))
		for i, cte := range b.ctes {
			entries[i] = fragment.Concat(
				fragment.Text(b.table.dialect.QuoteIdentifier(cte.name)+" AS "),
				fragment.Group(cte.query),
			)
		}
		parts = append(parts, fragment.Concat(fragment.Text("WITH "), fragment.Join(entries, ", ")))
	}

	selectList := fragment.Text("SELECT")
	if len(b.distinctOn) > 0 {
		selectList = selectList.Append(
			fragment.Text(" DISTINCT ON ("),
			fragment.Join(b.distinctOn, ", "),
			fragment.Text(")"),
		)
	}
	if len(b.columns) > 0 {
		selectList = selectList.Append(fragment.Text(" "), fragment.Join(b.columns, ", "))
	} else {
		selectList = selectList.Append(fragment.Text(" "), fragment.Join(b.table.Cols(b.table.desc.ColumnNames()...), ", "))
	}
	parts = append(parts, selectList)

	parts = append(parts, fragment.Concat(fragment.Text("FROM "), b.from))

	if len(b.joins) > 0 {
		parts = append(parts, renderJoins(b.joins))
	}
	if predicate := And(b.where...); !predicate.IsEmpty() {
		parts = append(parts, fragment.Concat(fragment.Text("WHERE "), predicate))
	}
	if len(b.groupBy) > 0 {
		parts = append(parts, fragment.Concat(fragment.Text("GROUP BY "), fragment.Join(b.groupBy, ", ")))
	}
	if predicate := And(b.having...); !predicate.IsEmpty() {
		parts = append(parts, fragment.Concat(fragment.Text("HAVING "), predicate))
	}
	if len(b.windows) > 0 {
		entries := make([]fragment.Fragment, len(b.windows))
		for i, w := range b.windows {
			entries[i] = fragment.Concat(
				fragment.Text(b.table.dialect.QuoteIdentifier(w.name)+" AS "),
				renderWindowSpec(w.partitionBy, w.orderBy),
			)
		}
		parts = append(parts, fragment.Concat(fragment.Text("WINDOW "), fragment.Join(entries, ", ")))
	}
	if len(b.orderBy) > 0 {
		parts = append(parts, fragment.Concat(fragment.Text("ORDER BY "), renderOrderTerms(b.orderBy)))
	}
	if b.limit != nil {
		parts = append(parts, fragment.Concat(fragment.Text("LIMIT "), fragment.Value(*b.limit)))
	}
	if b.offset != nil {
		parts = append(parts, fragment.Concat(fragment.Text("OFFSET "), fragment.Value(*b.offset)))
	}
	for _, op := range b.setOps {
		parts = append(parts, fragment.Concat(fragment.Text(op.keyword+" "), op.query))
	}

	return fragment.Join(parts, " ")
}

// Build finalizes the SELECT into an immutable statement.
func (b *SelectBuilder) Build() (*Statement, error) {
	return NewStatement(b.Fragment(), b.shape, b.table.dialect), nil
}
