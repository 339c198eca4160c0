package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txContextKey struct{}

// WithTransaction executes fn inside a database transaction.
// The transaction travels in the context handed to fn; repositories pick it up via GetQuerier.
// Nested calls reuse the outer transaction.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	// Pool acquire happens inside Begin, so it gets the same per-call bound as a query.
	beginCtx, cancelBegin := db.WithTimeout(ctx)
	tx, err := db.BeginTx(beginCtx)
	cancelBegin()
	if err != nil {
		return translateError(err, "begin transaction")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = rollback(ctx, db, tx)
			panic(p)
		}
	}()

	// Execute function
	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := rollback(ctx, db, tx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	commitCtx, cancelCommit := db.WithTimeout(ctx)
	defer cancelCommit()
	if err := tx.Commit(commitCtx); err != nil {
		return translateError(err, "commit transaction")
	}

	return nil
}

// rollback still runs when the request context is already cancelled.
func rollback(ctx context.Context, db *database.DB, tx pgx.Tx) error {
	rbCtx, cancel := db.WithTimeout(context.WithoutCancel(ctx))
	defer cancel()
	return tx.Rollback(rbCtx)
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}
