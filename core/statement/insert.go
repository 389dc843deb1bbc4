package statement

import (
	"fmt"

	"github.com/asaidimu/go-kente/core/fragment"
	"github.com/asaidimu/go-kente/core/schema"
	"github.com/asaidimu/go-kente/utils"
)

// InsertBuilder assembles a multi-row INSERT statement. The emitted column
// list is uniform across the whole batch: primary-key handling is decided
// once, from a scan of every row, before any value tuple is rendered.
type InsertBuilder struct {
	table     *Table
	rows      []schema.Document
	conflict  *conflictSpec
	returning []fragment.Fragment
	err       error
}

type conflictSpec struct {
	target []string
	update schema.Document
}

// Insert starts an INSERT builder for the table.
func (t *Table) Insert() *InsertBuilder {
	return &InsertBuilder{table: t}
}

// Rows appends documents to the batch.
func (b *InsertBuilder) Rows(docs ...schema.Document) *InsertBuilder {
	b.rows = append(b.rows, docs...)
	return b
}

// Records appends rows given as structs, converted field-by-field into
// documents. A conversion failure is recorded and surfaced at Build.
func (b *InsertBuilder) Records(records ...any) *InsertBuilder {
	for _, record := range records {
		doc, err := utils.StructToDocument(record)
		if err != nil {
			if b.err == nil {
				b.err = fmt.Errorf("cannot convert record to row: %w", err)
			}
			continue
		}
		b.rows = append(b.rows, doc)
	}
	return b
}

// OnConflictDoNothing adds an ON CONFLICT ... DO NOTHING clause. The target
// column list may be empty.
func (b *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	b.conflict = &conflictSpec{target: target}
	return b
}

// OnConflictDoUpdate adds an ON CONFLICT (target) DO UPDATE SET clause. The
// set values are emitted in the table's canonical column order for
// deterministic output.
func (b *InsertBuilder) OnConflictDoUpdate(target []string, set schema.Document) *InsertBuilder {
	b.conflict = &conflictSpec{target: target, update: set}
	return b
}

// Returning adds a RETURNING clause and switches the result shape to many.
func (b *InsertBuilder) Returning(exprs ...fragment.Fragment) *InsertBuilder {
	b.returning = append(b.returning, exprs...)
	return b
}

// Build classifies the batch, fixes the column list, and renders the INSERT.
// A zero-row batch builds a no-op statement with an empty fragment. A
// composite-key row with partial key presence fails with AmbiguousKeyError.
func (b *InsertBuilder) Build() (*Statement, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rows) == 0 {
		return NewStatement(fragment.Empty(), ShapeNone, b.table.dialect), nil
	}

	desc := b.table.desc
	keys := desc.PrimaryKeys()

	var conflictTarget []string
	if b.conflict != nil {
		conflictTarget = b.conflict.target
	}

	class := keyBatchAllPresent
	presence := make([]bool, len(b.rows))
	includeKeys := true
	if len(keys) > 0 {
		var err error
		class, presence, err = classifyKeyBatch(b.rows, keys)
		if err != nil {
			return nil, err
		}
		class, includeKeys = resolveKeyColumns(class, keys, conflictTarget)
	}

	var columns []schema.ColumnDescriptor
	for _, col := range desc.WritableColumns() {
		if col.PrimaryKey && !includeKeys {
			continue
		}
		columns = append(columns, col)
	}

	if len(columns) == 0 {
		if len(b.rows) > 1 {
			return nil, fmt.Errorf("table '%s' has no insertable columns for a multi-row batch", desc.Name)
		}
		frag := fragment.Concat(fragment.Text("INSERT INTO "), b.table.Name(), fragment.Text(" DEFAULT VALUES"))
		return b.finish(frag)
	}

	names := make([]fragment.Fragment, len(columns))
	for i, col := range columns {
		names[i] = b.table.Col(col.Name)
	}

	tuples := make([]fragment.Fragment, len(b.rows))
	for i, row := range b.rows {
		values := make([]fragment.Fragment, len(columns))
		for j, col := range columns {
			values[j] = b.columnValue(row, col, class, presence[i])
		}
		tuples[i] = fragment.Group(fragment.Join(values, ", "))
	}

	frag := fragment.Concat(
		fragment.Text("INSERT INTO "),
		b.table.Name(),
		fragment.Text(" ("),
		fragment.Join(names, ", "),
		fragment.Text(") VALUES "),
		fragment.Join(tuples, ", "),
	)

	if b.conflict != nil {
		frag = frag.Append(b.renderConflict())
	}

	return b.finish(frag)
}

// columnValue renders one slot of a value tuple. A primary-key slot with no
// value emits the dialect's generate marker, never a null literal. A non-key
// column absent from the row emits the generate marker when the column has a
// server-side default, otherwise a null binding.
func (b *InsertBuilder) columnValue(row schema.Document, col schema.ColumnDescriptor, class keyBatchClass, rowHasKey bool) fragment.Fragment {
	if col.PrimaryKey && class != keyBatchAllPresent && !rowHasKey {
		return fragment.Text(b.table.dialect.GenerateMarker())
	}
	value, ok := schema.Accessor(col.Name).Get(row)
	if !ok {
		if col.HasDefault {
			return fragment.Text(b.table.dialect.GenerateMarker())
		}
		return fragment.Value(nil)
	}
	return fragment.Value(value)
}

func (b *InsertBuilder) renderConflict() fragment.Fragment {
	frag := fragment.Text(" ON CONFLICT")
	if len(b.conflict.target) > 0 {
		targets := make([]fragment.Fragment, len(b.conflict.target))
		for i, name := range b.conflict.target {
			targets[i] = b.table.Col(name)
		}
		frag = frag.Append(fragment.Text(" ("), fragment.Join(targets, ", "), fragment.Text(")"))
	}
	if b.conflict.update == nil {
		return frag.Append(fragment.Text(" DO NOTHING"))
	}

	var assignments []fragment.Fragment
	for _, col := range b.table.desc.Columns {
		value, ok := b.conflict.update[col.Name]
		if !ok {
			continue
		}
		assignments = append(assignments, fragment.Concat(
			b.table.Col(col.Name),
			fragment.Text(" = "),
			fragment.Value(value),
		))
	}
	return frag.Append(fragment.Text(" DO UPDATE SET "), fragment.Join(assignments, ", "))
}

func (b *InsertBuilder) finish(frag fragment.Fragment) (*Statement, error) {
	shape := ShapeNone
	if len(b.returning) > 0 {
		frag = frag.Append(fragment.Text(" RETURNING "), fragment.Join(b.returning, ", "))
		shape = ShapeMany
	}
	return NewStatement(frag, shape, b.table.dialect), nil
}
