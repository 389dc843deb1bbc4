// Package schema defines the static table and column descriptors consumed by
// the statement builders and the row decoder. Descriptors are registered once
// at startup and never mutated afterwards, so they are safe to share across
// any number of concurrent statement-building calls.
package schema

import (
	"fmt"
)

// Document represents a single record of data, keyed by column name. A column
// absent from the map is distinct from a column present with a nil value only
// on the encode side; decoding never produces nil entries for absent columns.
type Document map[string]any

// ColumnType represents the value categories a column can hold.
type ColumnType string

const (
	ColumnTypeText      ColumnType = "text"
	ColumnTypeInteger   ColumnType = "integer"
	ColumnTypeDouble    ColumnType = "double"
	ColumnTypeBoolean   ColumnType = "boolean"
	ColumnTypeBlob      ColumnType = "blob"
	ColumnTypeUUID      ColumnType = "uuid"
	ColumnTypeTimestamp ColumnType = "timestamp"
)

// ColumnDescriptor holds the static metadata for one table column.
type ColumnDescriptor struct {
	// Name is the column name as it appears in the database.
	Name string `json:"name"`
	// Type is the column's value category.
	Type ColumnType `json:"type"`
	// PrimaryKey marks the column as part of the table's primary key.
	// Primary-key columns never accept NULL.
	PrimaryKey bool `json:"primaryKey,omitempty"`
	// Nullable marks the column as accepting NULL. Ignored for primary-key
	// columns.
	Nullable bool `json:"nullable,omitempty"`
	// HasDefault indicates the column has a server-side default value.
	HasDefault bool `json:"hasDefault,omitempty"`
	// Default is the default value, when HasDefault is set and the value is
	// known to the descriptor.
	Default any `json:"default,omitempty"`
	// Writable indicates the column participates in INSERT column lists and
	// UPDATE set lists. Generated or computed columns are registered with
	// Writable false.
	Writable bool `json:"writable"`
}

// Required reports whether decoding must find a non-null value for the column.
func (c ColumnDescriptor) Required() bool {
	return c.PrimaryKey || !c.Nullable
}

// TableDescriptor is the ordered collection of column descriptors for one
// table. Column order is canonical: it drives both INSERT column lists and
// positional row decoding, which must always agree.
type TableDescriptor struct {
	// Schema is the optional schema qualification for the table.
	Schema string `json:"schema,omitempty"`
	// Name is the table name.
	Name string `json:"name"`
	// Columns is the ordered column list.
	Columns []ColumnDescriptor `json:"columns"`
}

// NewTableDescriptor validates and constructs a table descriptor. The column
// list must be non-empty with unique, non-empty names.
func NewTableDescriptor(name string, columns ...ColumnDescriptor) (*TableDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table '%s' must define at least one column", name)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("table '%s' has a column with an empty name", name)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("table '%s' declares column '%s' more than once", name, col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return &TableDescriptor{Name: name, Columns: columns}, nil
}

// InSchema returns a copy of the descriptor qualified with the given schema
// name. The receiver is not modified.
func (t *TableDescriptor) InSchema(schemaName string) *TableDescriptor {
	clone := *t
	clone.Schema = schemaName
	return &clone
}

// Column looks up a column descriptor by name.
func (t *TableDescriptor) Column(name string) (ColumnDescriptor, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDescriptor{}, false
}

// ColumnNames returns the column names in canonical order.
func (t *TableDescriptor) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKeys returns the primary-key columns in canonical order.
func (t *TableDescriptor) PrimaryKeys() []ColumnDescriptor {
	var keys []ColumnDescriptor
	for _, col := range t.Columns {
		if col.PrimaryKey {
			keys = append(keys, col)
		}
	}
	return keys
}

// WritableColumns returns the writable columns in canonical order.
func (t *TableDescriptor) WritableColumns() []ColumnDescriptor {
	var cols []ColumnDescriptor
	for _, col := range t.Columns {
		if col.Writable {
			cols = append(cols, col)
		}
	}
	return cols
}

// Draft derives the descriptor variant used for insert-time "let the database
// generate it" semantics: identical column set, but primary-key columns are
// treated as optional on both the encode and decode side.
func (t *TableDescriptor) Draft() *DraftDescriptor {
	return &DraftDescriptor{Table: t}
}

// DraftDescriptor wraps a TableDescriptor with relaxed primary-key presence
// requirements.
type DraftDescriptor struct {
	Table *TableDescriptor
}

// Required reports whether decoding must find a non-null value for the column.
// Unlike the base descriptor, primary-key columns are optional in a draft.
func (d *DraftDescriptor) Required(col ColumnDescriptor) bool {
	if col.PrimaryKey {
		return false
	}
	return !col.Nullable
}
