package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// uniqueConstraintErrors maps unique indexes to the error reported when they are violated.
var uniqueConstraintErrors = map[string]error{
	"account_groups_name_key":       apperrors.ErrDuplicateName,
	"ux_accounts_name_active":       apperrors.ErrDuplicateName,
	"ux_accounts_code_active":       apperrors.ErrDuplicateCode,
	"ux_movements_reference_active": apperrors.ErrDuplicateReference,
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// NewTransactionManager returns the pool-backed TransactionManager.
func NewTransactionManager(pool *pgxpool.Pool) *BaseRepository {
	return &BaseRepository{Pool: pool}
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction. A transaction that is already closed is ignored.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// mapWriteError translates constraint violations into apperrors values and wraps anything
// else as an internal storage error.
func mapWriteError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: referenced record does not exist (%s)", apperrors.ErrValidation, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: value rejected by %s", apperrors.ErrValidation, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to "+action, err)
}

// mapReadError turns pgx.ErrNoRows into a not-found error for what and wraps anything else.
func mapReadError(err error, what string, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what)
	}
	return apperrors.NewAppError(500, "failed to "+action, err)
}
