// Package postgres implements the PostgreSQL dialect: "$n" positional
// placeholders, standards-compliant identifier quoting, and the DEFAULT
// keyword as the generate marker for absent primary-key values.
package postgres

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/asaidimu/go-kente/core/fragment"
)

// Dialect renders PostgreSQL SQL.
type Dialect struct{}

// NewDialect creates the PostgreSQL dialect.
func NewDialect() *Dialect {
	return &Dialect{}
}

// Name identifies the dialect.
func (d *Dialect) Name() string {
	return "postgres"
}

// Placeholder renders the Postgres ordinal marker for the 1-based position.
func (d *Dialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// QuoteIdentifier quotes a table or column name.
func (d *Dialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// GenerateMarker returns the token that requests server-side generation of a
// column value inside a VALUES tuple.
func (d *Dialect) GenerateMarker() string {
	return "DEFAULT"
}

var _ fragment.Dialect = (*Dialect)(nil)
