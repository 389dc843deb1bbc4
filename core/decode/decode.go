// Package decode reconstructs typed records from positional value streams.
// Decoding is the inverse of the column ordering used when statements are
// built: a row's values must arrive in the owning descriptor's canonical
// column order. Decoding is positional, never name-based.
package decode

import (
	"fmt"

	"github.com/asaidimu/go-kente/core/schema"
)

// MissingColumnError reports a null or absent value at a required column
// position during decoding.
type MissingColumnError struct {
	// Column is the name of the required column that had no value.
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column '%s'", e.Column)
}

// EncodeRow flattens a document into a value stream in the descriptor's
// canonical column order. Absent columns encode as nil. EncodeRow and
// DecodeRow are symmetric: decoding an encoded stream restores every present
// required field.
func EncodeRow(doc schema.Document, table *schema.TableDescriptor) []any {
	values := make([]any, len(table.Columns))
	for i, accessor := range table.Accessors() {
		if value, ok := accessor.Get(doc); ok {
			values[i] = value
		}
	}
	return values
}

// DecodeRow consumes exactly as many values as the descriptor has columns and
// reconstructs a document. A null or absent value at a required column fails
// with MissingColumnError naming the column; at an optional column it decodes
// to absence (the key is omitted from the document).
func DecodeRow(values []any, table *schema.TableDescriptor) (schema.Document, error) {
	return decodeRow(values, table.Columns, func(col schema.ColumnDescriptor) bool {
		return col.Required()
	})
}

// DecodeDraftRow decodes against the draft variant of a descriptor: identical
// to DecodeRow except primary-key columns are optional, matching the
// "database generates the key" insert path.
func DecodeDraftRow(values []any, draft *schema.DraftDescriptor) (schema.Document, error) {
	return decodeRow(values, draft.Table.Columns, draft.Required)
}

func decodeRow(values []any, columns []schema.ColumnDescriptor, required func(schema.ColumnDescriptor) bool) (schema.Document, error) {
	doc := make(schema.Document, len(columns))
	for i, col := range columns {
		var value any
		if i < len(values) {
			value = values[i]
		}
		if value == nil {
			if required(col) {
				return nil, &MissingColumnError{Column: col.Name}
			}
			continue
		}
		doc[col.Name] = value
	}
	return doc, nil
}
