package database

import (
	"context"
	"database/sql"
	"log"
)

// WithTx runs fn inside a transaction.  The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; the
// connection is returned to the pool on every exit path, including
// request cancellation.  Rollback failures are logged rather than
// returned so they never mask the error that caused the rollback.
//
// Correctness of read-then-write sequences executed through WithTx
// requires the underlying store to provide at least read-committed
// isolation with row-level locking on SELECT ... FOR UPDATE.  InnoDB
// satisfies this; a store without row locks would need an explicit
// version column checked on update instead.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				log.Printf("database: rollback failed: %v", rbErr)
			}
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
