package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable(t *testing.T) *TableDescriptor {
	t.Helper()
	table, err := NewTableDescriptor("users",
		ColumnDescriptor{Name: "id", Type: ColumnTypeInteger, PrimaryKey: true, Writable: true},
		ColumnDescriptor{Name: "name", Type: ColumnTypeText, Writable: true},
		ColumnDescriptor{Name: "email", Type: ColumnTypeText, Nullable: true, Writable: true},
		ColumnDescriptor{Name: "created_at", Type: ColumnTypeTimestamp, HasDefault: true, Writable: false},
	)
	require.NoError(t, err)
	return table
}

func TestNewTableDescriptorValidation(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		columns []ColumnDescriptor
		wantErr string
	}{
		{
			name:    "empty table name",
			table:   "",
			columns: []ColumnDescriptor{{Name: "id"}},
			wantErr: "table name cannot be empty",
		},
		{
			name:    "no columns",
			table:   "users",
			wantErr: "at least one column",
		},
		{
			name:    "empty column name",
			table:   "users",
			columns: []ColumnDescriptor{{Name: ""}},
			wantErr: "empty name",
		},
		{
			name:    "duplicate column",
			table:   "users",
			columns: []ColumnDescriptor{{Name: "id"}, {Name: "id"}},
			wantErr: "more than once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableDescriptor(tt.table, tt.columns...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTableDescriptorLookups(t *testing.T) {
	table := usersTable(t)

	col, ok := table.Column("email")
	require.True(t, ok)
	assert.True(t, col.Nullable)

	_, ok = table.Column("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"id", "name", "email", "created_at"}, table.ColumnNames())

	keys := table.PrimaryKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, "id", keys[0].Name)

	writable := table.WritableColumns()
	require.Len(t, writable, 3)
	assert.Equal(t, "id", writable[0].Name)
}

func TestColumnRequired(t *testing.T) {
	table := usersTable(t)

	id, _ := table.Column("id")
	name, _ := table.Column("name")
	email, _ := table.Column("email")

	assert.True(t, id.Required())
	assert.True(t, name.Required())
	assert.False(t, email.Required())
}

func TestDraftRelaxesPrimaryKey(t *testing.T) {
	table := usersTable(t)
	draft := table.Draft()

	id, _ := table.Column("id")
	name, _ := table.Column("name")
	email, _ := table.Column("email")

	assert.False(t, draft.Required(id))
	assert.True(t, draft.Required(name))
	assert.False(t, draft.Required(email))
}

func TestInSchemaReturnsCopy(t *testing.T) {
	table := usersTable(t)
	qualified := table.InSchema("public")

	assert.Equal(t, "public", qualified.Schema)
	assert.Equal(t, "", table.Schema)
	assert.Equal(t, table.Columns, qualified.Columns)
}

func TestAccessors(t *testing.T) {
	table := usersTable(t)
	doc := Document{"id": int64(1), "email": nil}

	accessors := table.Accessors()
	require.Len(t, accessors, 4)

	value, ok := accessors[0].Get(doc)
	assert.True(t, ok)
	assert.Equal(t, int64(1), value)

	value, ok = accessors[2].Get(doc)
	assert.True(t, ok)
	assert.Nil(t, value)

	_, ok = accessors[1].Get(doc)
	assert.False(t, ok)
}
