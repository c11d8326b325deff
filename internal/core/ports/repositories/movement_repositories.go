package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MovementReader defines read operations for movement data
type MovementReader interface {
	// FindMovementByID retrieves a movement by ID regardless of its active flag.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListActiveMovements retrieves every active movement, newest first.
	ListActiveMovements(ctx context.Context) ([]domain.Movement, error)

	// ListMovementsFiltered returns one page of active movements matching the filter plus the
	// total number of matches ignoring limit/offset.
	ListMovementsFiltered(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, int64, error)

	// ListMovementsByAccount returns up to limit active movements of an account strictly after
	// the cursor in (transaction_date DESC, created_at DESC, id DESC) order.
	ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *pagination.Cursor) ([]domain.Movement, error)

	// SummarizeByType aggregates active movements per type, ordered by total descending.
	SummarizeByType(ctx context.Context) ([]domain.MovementTypeSummary, error)
}

// MovementTxWriter defines the transactional operations used by the ledger.
type MovementTxWriter interface {
	// FindMovementByIDForUpdate selects a movement and locks its row.
	FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error)

	// FindActiveMovementByReference retrieves the active movement holding a reference number.
	FindActiveMovementByReference(ctx context.Context, tx pgx.Tx, reference string) (*domain.Movement, error)

	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error
	UpdateMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error
	DeactivateMovementInTx(ctx context.Context, tx pgx.Tx, movementID string, userID string, now time.Time) error

	// CountActiveMovementsByAccountInTx counts active movements referencing the account.
	CountActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (int64, error)

	// SumActiveMovementsByAccountInTx returns the signed sum of an account's active movements.
	SumActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error)
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementTxWriter
}
