package pgxstorage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TransactionsManager opens one transaction per DoWithTransaction call and
// carries it through the context, so every storage call inside the body
// joins it. Wallet credits and the conditional status updates they pair
// with must commit or roll back together.
type TransactionsManager struct {
	storage *DBStorage
}

func NewTransactionsManager(storage *DBStorage) *TransactionsManager {
	return &TransactionsManager{
		storage: storage,
	}
}

func (tm *TransactionsManager) DoWithTransaction(
	ctx context.Context,
	f func(ctx context.Context) error,
) error {
	txCtx, tx, err := tm.storage.withTransaction(ctx)
	if err != nil {
		return err
	}
	if err := f(txCtx); err != nil {
		return rollback(tx, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return rollback(tx, fmt.Errorf("transaction commit failed: %w", err))
	}
	return nil
}

// rollback reports a failed rollback alongside its cause, never instead
// of it. The background context lets the rollback go through even when
// the request context is already canceled.
func rollback(tx pgx.Tx, cause error) error {
	if err := tx.Rollback(context.Background()); err != nil {
		return fmt.Errorf("transaction rollback failed: %w, rollback caused by %w", err, cause)
	}
	return cause
}
