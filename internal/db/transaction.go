package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tpcell/portal/internal/pkg/logger"
)

const defaultTxTimeout = 30 * time.Second

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// Transactor runs units of work atomically.
type Transactor interface {
	WithTransaction(ctx context.Context, fn TransactionFn) error
}

type transactor struct {
	conn Beginner
}

// NewTransactor wraps anything that can begin a pgx transaction
func NewTransactor(conn Beginner) Transactor {
	return &transactor{conn: conn}
}

// WithTransaction commits when fn returns nil and rolls back otherwise.
// A panic inside fn rolls back and is re-raised.
func (t *transactor) WithTransaction(ctx context.Context, fn TransactionFn) (err error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	tx, err := t.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
