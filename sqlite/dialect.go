// Package sqlite implements the SQLite dialect: "?NNN" positional
// placeholders, double-quote identifier quoting, and NULL as the generate
// marker — inserting NULL into a rowid primary key is how SQLite is asked to
// allocate a fresh key, since VALUES tuples cannot carry DEFAULT.
package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/asaidimu/go-kente/core/fragment"
)

// Dialect renders SQLite SQL.
type Dialect struct{}

// NewDialect creates the SQLite dialect.
func NewDialect() *Dialect {
	return &Dialect{}
}

// Name identifies the dialect.
func (d *Dialect) Name() string {
	return "sqlite"
}

// Placeholder renders the SQLite ordinal marker for the 1-based position.
func (d *Dialect) Placeholder(position int) string {
	return fmt.Sprintf("?%d", position)
}

// QuoteIdentifier quotes a table or column name, doubling embedded quotes.
func (d *Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// GenerateMarker returns the token emitted for an absent primary-key value.
func (d *Dialect) GenerateMarker() string {
	return "NULL"
}

var _ fragment.Dialect = (*Dialect)(nil)

// Args converts a compiled statement's bindings into driver-level arguments
// for a SQLite connection, mapping values onto SQLite's storage types:
// booleans become integers, UUIDs become text, and arrays are serialized to
// JSON text since SQLite has no array storage class.
func Args(bindings []fragment.Binding) ([]any, error) {
	args := make([]any, len(bindings))
	for i, b := range bindings {
		switch b.Kind {
		case fragment.BindingInvalid:
			return nil, fmt.Errorf("binding %d carries an encoding failure: %w", i+1, b.Err)
		case fragment.BindingNull:
			args[i] = nil
		case fragment.BindingBool:
			if b.Value.(bool) {
				args[i] = int64(1)
			} else {
				args[i] = int64(0)
			}
		case fragment.BindingUUID:
			args[i] = b.Value.(uuid.UUID).String()
		case fragment.BindingArray:
			jsonBytes, err := json.Marshal(b.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize array binding %d to JSON: %w", i+1, err)
			}
			args[i] = string(jsonBytes)
		default:
			args[i] = b.Value
		}
	}
	return args, nil
}
