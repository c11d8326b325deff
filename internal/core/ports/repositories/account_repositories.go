package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountQuery narrows account listings. All listings return active accounts only, ordered by name.
type AccountQuery struct {
	AccountType domain.AccountType
	GroupID     string
	Search      string // case-insensitive substring over name, code, phone, email
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by ID regardless of its active flag.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves active accounts matching the query.
	ListAccounts(ctx context.Context, query AccountQuery) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account, including its opening balance.
	SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccount updates profile fields. It never writes the balance column.
	UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// DeactivateAccount marks an active account inactive.
	DeactivateAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error
}

// AccountBalanceSupport defines the primitives that run inside write transactions.
type AccountBalanceSupport interface {
	// FindAccountByIDForUpdate selects an account and locks its row for the rest of the transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// AdjustBalanceInTx adds delta to the stored balance as a single atomic increment.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error

	// FindActiveAccountByName retrieves the active account holding the given name.
	FindActiveAccountByName(ctx context.Context, tx pgx.Tx, name string) (*domain.Account, error)

	// FindActiveAccountByCode retrieves the active account holding the given code.
	FindActiveAccountByCode(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error)

	// SetBalanceInTx overwrites the stored balance. Used by repair and administrative override only.
	SetBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
