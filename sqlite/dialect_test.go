package sqlite

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/go-kente/core/fragment"
)

func TestDialectRendering(t *testing.T) {
	d := NewDialect()

	assert.Equal(t, "sqlite", d.Name())
	assert.Equal(t, "?1", d.Placeholder(1))
	assert.Equal(t, "?13", d.Placeholder(13))
	assert.Equal(t, `"items"`, d.QuoteIdentifier("items"))
	assert.Equal(t, `"weird""name"`, d.QuoteIdentifier(`weird"name`))
	assert.Equal(t, "NULL", d.GenerateMarker())
}

func TestArgsConversion(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	args, err := Args([]fragment.Binding{
		fragment.Bool(true),
		fragment.Bool(false),
		fragment.UUID(id),
		fragment.Int64Array([]int64{1, 2, 3}),
		fragment.Str("plain"),
		fragment.Null(),
	})
	require.NoError(t, err)
	require.Len(t, args, 6)

	assert.Equal(t, int64(1), args[0])
	assert.Equal(t, int64(0), args[1])
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", args[2])
	assert.Equal(t, "[1,2,3]", args[3])
	assert.Equal(t, "plain", args[4])
	assert.Nil(t, args[5])
}

func TestArgsRejectsInvalidBinding(t *testing.T) {
	_, err := Args([]fragment.Binding{
		fragment.BindValue(make(chan int)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding 1")
}
