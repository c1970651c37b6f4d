package repository

import (
	"context"
	"errors"

	"movie-reservation/pkg/apperr"
	"movie-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txKey struct{}

// TxRunner executes a function inside a single database transaction. The
// transaction travels in the context; repository methods route through it
// when present. Any error (including context cancellation) rolls back, so
// no partial state survives a failed operation.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txRunner struct {
	db database.PgxIface
}

func NewTxRunner(db database.PgxIface) TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperr.Unavailable("begin transaction", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Unavailable("commit transaction", err)
	}
	return nil
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// ------------- transaction-aware query helpers -------------

func exec(ctx context.Context, db database.PgxIface, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return db.Exec(ctx, sql, args...)
}

func queryRow(ctx context.Context, db database.PgxIface, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return db.QueryRow(ctx, sql, args...)
}

func queryRows(ctx context.Context, db database.PgxIface, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return db.Query(ctx, sql, args...)
}

// acquireKeyLock takes an exclusive transaction-scoped lock on a logical
// key. The lock is on the key, not on any existing row, so it serializes
// check-then-insert even when the row does not exist yet. Released when
// the surrounding transaction commits or rolls back.
func acquireKeyLock(ctx context.Context, db database.PgxIface, key string) error {
	_, err := exec(ctx, db, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
