package repositories

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// FindGroupByName retrieves a group by its exact (case-sensitive) name.
	FindGroupByName(ctx context.Context, name string) (*domain.Group, error)

	// ListGroups retrieves all groups ordered by name.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	// CountLinkedAccounts counts active accounts that reference the group.
	CountLinkedAccounts(ctx context.Context, groupID string) (int64, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	SaveGroup(ctx context.Context, group domain.Group) error
	UpdateGroup(ctx context.Context, group domain.Group) error
	// DeleteGroup hard-deletes a group row.
	DeleteGroup(ctx context.Context, tx pgx.Tx, groupID string) error
}

// GroupTxSupport defines the row locks that keep group deletion and account linking apart.
type GroupTxSupport interface {
	// FindGroupByIDForUpdate selects a group and locks its row exclusively until tx ends.
	FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error)

	// FindGroupByIDForShare selects a group with a shared lock. It blocks a concurrent delete
	// of the group until tx ends.
	FindGroupByIDForShare(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error)

	// CountLinkedAccountsInTx counts active accounts that reference the group.
	CountLinkedAccountsInTx(ctx context.Context, tx pgx.Tx, groupID string) (int64, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
	GroupTxSupport
}
