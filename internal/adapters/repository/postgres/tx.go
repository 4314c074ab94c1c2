package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// WithinTransaction runs fn inside a begin/commit bracket on a single
// pooled connection. The connection is released on every exit path:
// rollback on fn failure, rollback on commit failure, commit otherwise.
// No current route needs multi-step writes; this is the primitive they
// would use.
func WithinTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
