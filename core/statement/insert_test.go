package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/go-kente/core/schema"
	"github.com/asaidimu/go-kente/postgres"
	"github.com/asaidimu/go-kente/sqlite"
)

func TestInsertAllNullOmitsKeyColumn(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(
			schema.Document{"name": "Ada"},
			schema.Document{"name": "Grace", "email": "grace@example.com"},
		).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "users" ("name", "email") VALUES ($1, $2), ($3, $4)`, compiled.SQL)
	assert.NotContains(t, compiled.SQL, `"id"`)

	values := bindingValues(compiled.Bindings)
	assert.Equal(t, "Ada", values[0])
	assert.True(t, compiled.Bindings[1].IsNull())
	assert.Equal(t, "Grace", values[2])
	assert.Equal(t, "grace@example.com", values[3])
	assert.Equal(t, ShapeNone, compiled.Shape)
}

func TestInsertMixedEmitsGenerateMarker(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(
			schema.Document{"id": int64(1), "name": "Ada"},
			schema.Document{"name": "Grace"},
		).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name", "email") VALUES ($1, $2, $3), (DEFAULT, $4, $5)`,
		compiled.SQL,
	)
	assert.Equal(t, int64(1), compiled.Bindings[0].Value)
	assert.Equal(t, "Grace", compiled.Bindings[3].Value)
}

func TestInsertAllPresentBindsEveryKey(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(
			schema.Document{"id": int64(1), "name": "Ada", "email": "ada@example.com"},
			schema.Document{"id": int64(2), "name": "Grace", "email": "grace@example.com"},
		).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name", "email") VALUES ($1, $2, $3), ($4, $5, $6)`,
		compiled.SQL,
	)
	assert.NotContains(t, compiled.SQL, "DEFAULT")
	assert.Len(t, compiled.Bindings, 6)
}

func TestInsertConflictTargetForcesKeyColumn(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"name": "Ada", "email": "ada@example.com"}).
		OnConflictDoNothing("id").
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name", "email") VALUES (DEFAULT, $1, $2) ON CONFLICT ("id") DO NOTHING`,
		compiled.SQL,
	)
}

func TestInsertConflictWithoutTargetKeepsAllNullShape(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"name": "Ada", "email": "ada@example.com"}).
		OnConflictDoNothing().
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("name", "email") VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		compiled.SQL,
	)
}

func TestInsertConflictDoUpdate(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"id": int64(1), "name": "Ada", "email": "old@example.com"}).
		OnConflictDoUpdate([]string{"id"}, schema.Document{
			"email": "new@example.com",
			"name":  "Ada L.",
		}).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name", "email") VALUES ($1, $2, $3)`+
			` ON CONFLICT ("id") DO UPDATE SET "name" = $4, "email" = $5`,
		compiled.SQL,
	)
	assert.Equal(t, "Ada L.", compiled.Bindings[3].Value)
	assert.Equal(t, "new@example.com", compiled.Bindings[4].Value)
}

func TestInsertZeroRowsIsNoop(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.True(t, compiled.IsNoop())
	assert.Empty(t, compiled.Bindings)
}

func TestInsertReturning(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"name": "Ada"}).
		Returning(tbl.Col("id")).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "users" ("name", "email") VALUES ($1, $2) RETURNING "id"`, compiled.SQL)
	assert.Equal(t, ShapeMany, compiled.Shape)
}

func TestInsertDefaultValuesWhenNoColumnRemains(t *testing.T) {
	desc, err := schema.NewTableDescriptor("audit_marks",
		schema.ColumnDescriptor{Name: "id", Type: schema.ColumnTypeInteger, PrimaryKey: true, Writable: true},
		schema.ColumnDescriptor{Name: "created_at", Type: schema.ColumnTypeTimestamp, Nullable: true, HasDefault: true},
	)
	require.NoError(t, err)
	tbl := NewTable(desc, postgres.NewDialect())

	stmt, err := tbl.Insert().Rows(schema.Document{}).Build()
	require.NoError(t, err)
	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "audit_marks" DEFAULT VALUES`, compiled.SQL)

	_, err = tbl.Insert().Rows(schema.Document{}, schema.Document{}).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no insertable columns")
}

func TestInsertAbsentDefaultedColumnEmitsMarker(t *testing.T) {
	desc, err := schema.NewTableDescriptor("tasks",
		schema.ColumnDescriptor{Name: "id", Type: schema.ColumnTypeInteger, PrimaryKey: true, Writable: true},
		schema.ColumnDescriptor{Name: "status", Type: schema.ColumnTypeText, HasDefault: true, Writable: true},
	)
	require.NoError(t, err)
	tbl := NewTable(desc, postgres.NewDialect())

	stmt, err := tbl.Insert().Rows(schema.Document{"id": int64(1)}).Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "tasks" ("id", "status") VALUES ($1, DEFAULT)`, compiled.SQL)
	assert.Len(t, compiled.Bindings, 1)
}

func compositeTable(t *testing.T) *Table {
	t.Helper()
	desc, err := schema.NewTableDescriptor("memberships",
		schema.ColumnDescriptor{Name: "tenant_id", Type: schema.ColumnTypeInteger, PrimaryKey: true, Writable: true},
		schema.ColumnDescriptor{Name: "user_id", Type: schema.ColumnTypeInteger, PrimaryKey: true, Writable: true},
		schema.ColumnDescriptor{Name: "role", Type: schema.ColumnTypeText, Writable: true},
	)
	require.NoError(t, err)
	return NewTable(desc, postgres.NewDialect())
}

func TestInsertCompositeKeyPartialPresenceFails(t *testing.T) {
	tbl := compositeTable(t)

	_, err := tbl.Insert().
		Rows(
			schema.Document{"tenant_id": int64(1), "user_id": int64(2), "role": "admin"},
			schema.Document{"tenant_id": int64(1), "role": "member"},
		).
		Build()
	require.Error(t, err)

	var ambiguous *AmbiguousKeyError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 1, ambiguous.Row)
	assert.Equal(t, []string{"user_id"}, ambiguous.Missing)
}

func TestInsertCompositeKeyAllNull(t *testing.T) {
	tbl := compositeTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"role": "admin"}).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "memberships" ("role") VALUES ($1)`, compiled.SQL)
}

func TestInsertNilKeyValueCountsAsAbsent(t *testing.T) {
	tbl := usersTable(t)

	stmt, err := tbl.Insert().
		Rows(schema.Document{"id": nil, "name": "Ada"}).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "users" ("name", "email") VALUES ($1, $2)`, compiled.SQL)
}

func TestInsertRecordsFromStructs(t *testing.T) {
	tbl := usersTable(t)

	type userRecord struct {
		ID    *int64 `json:"id,omitempty"`
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
	}

	stmt, err := tbl.Insert().
		Records(
			userRecord{Name: "Ada", Email: "ada@example.com"},
			userRecord{Name: "Grace"},
		).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t, `INSERT INTO "users" ("name", "email") VALUES ($1, $2), ($3, $4)`, compiled.SQL)
	assert.Equal(t, "ada@example.com", compiled.Bindings[1].Value)
	assert.True(t, compiled.Bindings[3].IsNull())
}

func TestInsertRecordsRejectsNonStruct(t *testing.T) {
	tbl := usersTable(t)

	_, err := tbl.Insert().Records(42).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record")
}

func TestInsertMixedBatchOnSQLite(t *testing.T) {
	tbl := NewTable(usersDescriptor(t), sqlite.NewDialect())

	stmt, err := tbl.Insert().
		Rows(
			schema.Document{"id": int64(1), "name": "Ada"},
			schema.Document{"name": "Grace"},
		).
		Build()
	require.NoError(t, err)

	compiled := mustCompile(t, stmt)
	assert.Equal(t,
		`INSERT INTO "users" ("id", "name", "email") VALUES (?1, ?2, ?3), (NULL, ?4, ?5)`,
		compiled.SQL,
	)
	assert.Equal(t, "sqlite", compiled.Dialect)
}
