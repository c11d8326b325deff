package services

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an active account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)
	ListAccountsByGroup(ctx context.Context, groupID string) ([]domain.Account, error)
	SearchAccounts(ctx context.Context, term string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.AccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.AccountRequest, userID string) (*domain.Account, error)
	// DeleteAccount soft-deletes an account that has no dependent records.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// DependencyCounter reports how many records would be orphaned by deleting an account.
// The account service sums every registered counter before allowing a delete. Counters run
// inside the delete transaction after the account row has been locked.
type DependencyCounter interface {
	CountDependents(ctx context.Context, tx pgx.Tx, accountID string) (int64, error)
}

// DependencyCounterFunc adapts a function to DependencyCounter.
type DependencyCounterFunc func(ctx context.Context, tx pgx.Tx, accountID string) (int64, error)

func (f DependencyCounterFunc) CountDependents(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	return f(ctx, tx, accountID)
}
