// Package statement provides the clause and statement builders that assemble
// SELECT, INSERT, UPDATE, and DELETE statements from table descriptors. Each
// builder folds its clauses into a single fragment and produces an immutable
// Statement carrying the fragment, the expected result shape, and the dialect
// it was built against.
package statement

import (
	"github.com/asaidimu/go-kente/core/fragment"
	"github.com/asaidimu/go-kente/core/schema"
)

// ResultShape describes how many rows a statement is expected to produce.
type ResultShape string

const (
	// ShapeNone indicates the statement returns no rows.
	ShapeNone ResultShape = "none"
	// ShapeOptional indicates the statement returns zero or one row.
	ShapeOptional ResultShape = "optional"
	// ShapeMany indicates the statement returns any number of rows.
	ShapeMany ResultShape = "many"
)

// Statement is the finished product of a statement builder: a fragment, the
// expected result shape, and the dialect the fragment was composed for.
// Statements are immutable once built.
type Statement struct {
	fragment fragment.Fragment
	shape    ResultShape
	dialect  fragment.Dialect
}

// NewStatement wraps a pre-composed fragment into a statement. Most callers
// use the builders instead; this entry point exists for hand-written SQL
// fragments that still want to flow through the compilation pipeline.
func NewStatement(frag fragment.Fragment, shape ResultShape, dialect fragment.Dialect) *Statement {
	return &Statement{fragment: frag, shape: shape, dialect: dialect}
}

// Fragment returns the statement's fragment.
func (s *Statement) Fragment() fragment.Fragment {
	return s.fragment
}

// Shape returns the statement's expected result shape.
func (s *Statement) Shape() ResultShape {
	return s.shape
}

// Dialect returns the dialect the statement was built against.
func (s *Statement) Dialect() fragment.Dialect {
	return s.dialect
}

// Compile flattens the statement's fragment into SQL text and an ordered
// binding list. A statement whose fragment is empty compiles to a no-op; see
// Compiled.IsNoop.
func (s *Statement) Compile() (*Compiled, error) {
	sql, bindings, err := s.fragment.Flatten(s.dialect)
	if err != nil {
		return nil, err
	}
	return &Compiled{
		SQL:      sql,
		Bindings: bindings,
		Shape:    s.shape,
		Dialect:  s.dialect.Name(),
	}, nil
}

// Compiled is the executable triple handed to an external execution layer:
// dialect-correct SQL text with positional placeholders, the bindings in
// placeholder order, and the expected result shape.
type Compiled struct {
	SQL      string
	Bindings []fragment.Binding
	Shape    ResultShape
	Dialect  string
}

// IsNoop reports whether the compiled statement carries no SQL text. Callers
// must treat a no-op as a distinguished case instead of sending empty SQL to
// a database.
func (c *Compiled) IsNoop() bool {
	return c.SQL == ""
}

// Table binds a table descriptor to a dialect and is the entry point for
// building statements against that table.
type Table struct {
	desc    *schema.TableDescriptor
	dialect fragment.Dialect
}

// NewTable creates a statement-building handle for the given descriptor and
// dialect. The descriptor is shared, never copied or mutated.
func NewTable(desc *schema.TableDescriptor, dialect fragment.Dialect) *Table {
	return &Table{desc: desc, dialect: dialect}
}

// Descriptor returns the underlying table descriptor.
func (t *Table) Descriptor() *schema.TableDescriptor {
	return t.desc
}

// Dialect returns the dialect the handle builds statements for.
func (t *Table) Dialect() fragment.Dialect {
	return t.dialect
}

// Name returns the quoted, schema-qualified table name as a fragment.
func (t *Table) Name() fragment.Fragment {
	if t.desc.Schema != "" {
		return fragment.Text(t.dialect.QuoteIdentifier(t.desc.Schema) + "." + t.dialect.QuoteIdentifier(t.desc.Name))
	}
	return fragment.Text(t.dialect.QuoteIdentifier(t.desc.Name))
}

// Col returns the quoted column reference as a fragment. The column does not
// have to exist in the descriptor; joined or computed columns pass through
// unchecked.
func (t *Table) Col(name string) fragment.Fragment {
	return fragment.Text(t.dialect.QuoteIdentifier(name))
}

// Cols returns quoted column references for each name.
func (t *Table) Cols(names ...string) []fragment.Fragment {
	out := make([]fragment.Fragment, len(names))
	for i, name := range names {
		out[i] = t.Col(name)
	}
	return out
}
