package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for validation connections
	"go.uber.org/zap"

	"github.com/asaidimu/go-kente/core/fragment"
)

// SQLSTATE codes the validator tolerates: the statement is syntactically fine,
// it just references objects the validation database does not have.
var toleratedStates = map[string]struct{}{
	"42P01": {}, // undefined_table
	"42703": {}, // undefined_column
	"42704": {}, // undefined_object
	"42883": {}, // undefined_function
	"42P18": {}, // indeterminate_datatype
}

// Validator submits built SQL to a live PostgreSQL server's planner via
// EXPLAIN, without executing it. It exists for test harnesses that want the
// server's own parser as the arbiter of syntax; it is not part of the
// statement-building runtime contract. Undefined table/column errors are
// tolerated, syntax errors are real failures.
type Validator struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewValidator opens a validation connection pool for the given DSN.
func NewValidator(dsn string, logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open validation connection: %w", err)
	}
	return &Validator{db: db, logger: logger}, nil
}

// Validate runs EXPLAIN over the SQL with its bindings and reports whether the
// server accepted the statement. Empty SQL is a no-op and validates trivially.
func (v *Validator) Validate(ctx context.Context, sqlText string, bindings []fragment.Binding) error {
	if sqlText == "" {
		return nil
	}

	args, err := Args(bindings)
	if err != nil {
		return err
	}

	rows, err := v.db.QueryContext(ctx, "EXPLAIN "+sqlText, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if _, tolerated := toleratedStates[pgErr.Code]; tolerated {
				v.logger.Debug("validation tolerated missing object",
					zap.String("sqlstate", pgErr.Code),
					zap.String("message", pgErr.Message),
				)
				return nil
			}
			return fmt.Errorf("statement rejected (SQLSTATE %s): %s", pgErr.Code, pgErr.Message)
		}
		return fmt.Errorf("validation query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		// Plan lines are irrelevant; reaching them means the parse succeeded.
	}
	return rows.Err()
}

// Close releases the validation connection pool.
func (v *Validator) Close() error {
	return v.db.Close()
}
