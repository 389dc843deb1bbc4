package schema

// ColumnAccessor pairs a column name with the function that extracts that
// column's value from a Document. The boolean result distinguishes an absent
// column from one present with a nil value.
type ColumnAccessor struct {
	Column string
	Get    func(doc Document) (any, bool)
}

// Accessor builds the accessor for a single named column.
func Accessor(column string) ColumnAccessor {
	return ColumnAccessor{
		Column: column,
		Get: func(doc Document) (any, bool) {
			value, ok := doc[column]
			return value, ok
		},
	}
}

// Accessors returns one accessor per column, in canonical column order.
func (t *TableDescriptor) Accessors() []ColumnAccessor {
	out := make([]ColumnAccessor, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = Accessor(col.Name)
	}
	return out
}
