package statement

import (
	"fmt"

	"github.com/asaidimu/go-kente/core/fragment"
)

// DeleteBuilder assembles a DELETE statement: FROM, an optional WHERE
// conjunction, and an optional RETURNING clause.
type DeleteBuilder struct {
	table      *Table
	where      []fragment.Fragment
	returning  []fragment.Fragment
	unsafeFull bool
}

// Delete starts a DELETE builder for the table.
func (t *Table) Delete() *DeleteBuilder {
	return &DeleteBuilder{table: t}
}

// Where adds predicates to the WHERE conjunction.
func (b *DeleteBuilder) Where(predicates ...fragment.Fragment) *DeleteBuilder {
	b.where = append(b.where, predicates...)
	return b
}

// OrWhere adds a disjunctive group as one conjunct of the WHERE clause.
func (b *DeleteBuilder) OrWhere(predicates ...fragment.Fragment) *DeleteBuilder {
	b.where = append(b.where, Or(predicates...))
	return b
}

// Unsafe permits building without a WHERE clause, deleting every row.
func (b *DeleteBuilder) Unsafe() *DeleteBuilder {
	b.unsafeFull = true
	return b
}

// Returning adds a RETURNING clause and switches the result shape to many.
func (b *DeleteBuilder) Returning(exprs ...fragment.Fragment) *DeleteBuilder {
	b.returning = append(b.returning, exprs...)
	return b
}

// Build finalizes the DELETE. A builder with no WHERE clause is rejected
// unless Unsafe was called.
func (b *DeleteBuilder) Build() (*Statement, error) {
	predicate := And(b.where...)
	if predicate.IsEmpty() && !b.unsafeFull {
		return nil, errMissingWhere("DELETE", b.table.desc.Name)
	}

	frag := fragment.Concat(fragment.Text("DELETE FROM "), b.table.Name())
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

func errMissingWhere(verb, table string) error {
	return fmt.Errorf("%s on '%s' has no WHERE clause; call Unsafe to affect every row", verb, table)
}
