package database

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories need from a handle. *sql.DB and *sql.Tx both
// satisfy it, so a repository can run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ReadOnly is the option set for transactions that only query.
var ReadOnly = &sql.TxOptions{ReadOnly: true}

// WithTx runs fn in one transaction on db. The transaction commits only when
// fn returns nil; an error or a panic from fn rolls it back, and the panic
// continues up the stack. Errors from fn are returned unwrapped so callers
// can match sentinels.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
