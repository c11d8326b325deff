package services

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations for movements
type LedgerReaderSvc interface {
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)
	ListMovements(ctx context.Context) ([]domain.Movement, error)
	// ListMovementsFiltered returns one page and the total number of matches.
	ListMovementsFiltered(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, int64, error)
	ListMovementsByAccount(ctx context.Context, accountID string, params dto.ListByAccountParams) (*dto.ListMovementsByAccountResponse, error)
	SummaryByType(ctx context.Context) ([]domain.MovementTypeSummary, error)
}

// LedgerWriterSvc defines the balance-affecting operations. Each runs in one transaction.
type LedgerWriterSvc interface {
	CreateMovement(ctx context.Context, req dto.MovementRequest, userID string) (*domain.Movement, error)
	UpdateMovement(ctx context.Context, movementID string, req dto.MovementRequest, userID string) (*domain.Movement, error)
	DeleteMovement(ctx context.Context, movementID string, userID string) error
	// RecalculateAccountBalance re-derives an account balance from its opening balance and
	// active movements.
	RecalculateAccountBalance(ctx context.Context, accountID string, userID string) (*domain.BalanceRecalculation, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
