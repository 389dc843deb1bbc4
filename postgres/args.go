package postgres

import (
	"fmt"

	"github.com/lib/pq"

	"github.com/asaidimu/go-kente/core/fragment"
)

// Args converts a compiled statement's bindings into driver-level arguments
// for a PostgreSQL connection. Array bindings are wrapped with pq.Array so the
// driver sends real Postgres arrays; scalar bindings pass through unchanged.
// An invalid binding is a caller error here: flattening should already have
// rejected it.
func Args(bindings []fragment.Binding) ([]any, error) {
	args := make([]any, len(bindings))
	for i, b := range bindings {
		switch b.Kind {
		case fragment.BindingInvalid:
			return nil, fmt.Errorf("binding %d carries an encoding failure: %w", i+1, b.Err)
		case fragment.BindingNull:
			args[i] = nil
		case fragment.BindingArray:
			args[i] = pq.Array(b.Value)
		default:
			args[i] = b.Value
		}
	}
	return args, nil
}
