package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
)

// UpdateBuilder assembles an UPDATE statement: a SET list, an optional WHERE
// conjunction, and an optional RETURNING clause. An update with no SET entries
// builds a no-op statement with an empty fragment.
type UpdateBuilder struct {
	table      *Table
	set        []fragment.Fragment
	where      []fragment.Fragment
	returning  []fragment.Fragment
	unsafeFull bool
}

// Update starts an UPDATE builder for the table.
func (t *Table) Update() *UpdateBuilder {
	return &UpdateBuilder{table: t}
}

// Set adds a column = value assignment with the value bound as a parameter.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.set = append(b.set, fragment.Concat(
		b.table.Col(column),
		fragment.Text(" = "),
		fragment.Value(value),
	))
	return b
}

// SetExpr adds a column = expression assignment with the right-hand side
// emitted as the given fragment.
func (b *UpdateBuilder) SetExpr(column string, expr fragment.Fragment) *UpdateBuilder {
	b.set = append(b.set, fragment.Concat(
		b.table.Col(column),
		fragment.Text(" = "),
		expr,
	))
	return b
}

// Where adds predicates to the WHERE conjunction.
func (b *UpdateBuilder) Where(predicates ...fragment.Fragment) *UpdateBuilder {
	b.where = append(b.where, predicates...)
	return b
}

// OrWhere adds a disjunctive group as one conjunct of the WHERE clause.
func (b *UpdateBuilder) OrWhere(predicates ...fragment.Fragment) *UpdateBuilder {
	b.where = append(b.where, Or(predicates...))
	return b
}

// Unsafe permits building without a WHERE clause, updating every row.
func (b *UpdateBuilder) Unsafe() *UpdateBuilder {
	b.unsafeFull = true
	return b
}

// Returning adds a RETURNING clause and switches the result shape to many.
func (b *UpdateBuilder) Returning(exprs ...fragment.Fragment) *UpdateBuilder {
	b.returning = append(b.returning, exprs...)
	return b
}

// Build finalizes the UPDATE. A builder with no assignments produces a no-op
// statement; a builder with no WHERE clause is rejected unless Unsafe was
// called.
func (b *UpdateBuilder) Build() (*Statement, error) {
	if len(b.set) == 0 {
		return NewStatement(fragment.Empty(), ShapeNone, b.table.dialect), nil
	}
	predicate := And(b.where...)
	if predicate.IsEmpty() && !b.unsafeFull {
		return nil, errMissingWhere("UPDATE", b.table.desc.Name)
	}

	frag := fragment.Concat(
		fragment.Text("UPDATE "),
		b.table.Name(),
		fragment.Text(" SET "),
		fragment.Join(b.set, ", "),
	)
	if !predicate.IsEmpty() {
		frag = frag.Append(fragment.Text(" WHERE "), predicate)
	}

	shape := ShapeNone
	if len(b.returning) > 0 {
		frag = frag.Append(fragment.Text(" RETURNING "), fragment.Join(b.returning, ", "))
		shape = ShapeMany
	}
	return NewStatement(frag, shape, b.table.dialect), nil
}
