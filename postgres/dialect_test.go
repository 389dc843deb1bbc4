package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/go-kente/core/fragment"
)

func TestDialectRendering(t *testing.T) {
	d := NewDialect()

	assert.Equal(t, "postgres", d.Name())
	assert.Equal(t, "$1", d.Placeholder(1))
	assert.Equal(t, "$42", d.Placeholder(42))
	assert.Equal(t, `"users"`, d.QuoteIdentifier("users"))
	assert.Equal(t, `"weird""name"`, d.QuoteIdentifier(`weird"name`))
	assert.Equal(t, "DEFAULT", d.GenerateMarker())
}

func TestArgsConversion(t *testing.T) {
	id := uuid.New()
	args, err := Args([]fragment.Binding{
		fragment.Str("Ada"),
		fragment.Int64(7),
		fragment.Null(),
		fragment.UUID(id),
		fragment.TextArray([]string{"a", "b"}),
	})
	require.NoError(t, err)
	require.Len(t, args, 5)

	assert.Equal(t, "Ada", args[0])
	assert.Equal(t, int64(7), args[1])
	assert.Nil(t, args[2])
	assert.Equal(t, id, args[3])
	assert.IsType(t, pq.Array([]string{}), args[4])
}

func TestArgsRejectsInvalidBinding(t *testing.T) {
	_, err := Args([]fragment.Binding{
		fragment.BindValue(struct{ X int }{X: 1}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding 1")
}

// TestValidatorAgainstLiveServer exercises the EXPLAIN dry-run against a real
// server. It only runs when KENTE_POSTGRES_DSN points at one.
func TestValidatorAgainstLiveServer(t *testing.T) {
	dsn := os.Getenv("KENTE_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KENTE_POSTGRES_DSN not set")
	}

	v, err := NewValidator(dsn, nil)
	require.NoError(t, err)
	defer v.Close()

	ctx := context.Background()

	// Missing tables are tolerated; the parse is what matters.
	err = v.Validate(ctx, `SELECT "id" FROM "no_such_table" WHERE "name" = $1`, []fragment.Binding{
		fragment.Str("Ada"),
	})
	assert.NoError(t, err)

	// A no-op validates trivially.
	assert.NoError(t, v.Validate(ctx, "", nil))

	// Real syntax errors must fail.
	err = v.Validate(ctx, `SELEC "id" FROM "users"`, nil)
	assert.Error(t, err)
}
