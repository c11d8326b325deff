package services

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/dto"
)

// GroupReaderSvc defines read operations for groups
type GroupReaderSvc interface {
	GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	// CountLinkedAccounts reports how many active accounts reference the group.
	CountLinkedAccounts(ctx context.Context, groupID string) (int64, error)
}

// GroupWriterSvc defines write operations for groups
type GroupWriterSvc interface {
	CreateGroup(ctx context.Context, req dto.GroupRequest, userID string) (*domain.Group, error)
	UpdateGroup(ctx context.Context, groupID string, req dto.GroupRequest, userID string) (*domain.Group, error)
	// DeleteGroup hard-deletes a group that no active account references.
	DeleteGroup(ctx context.Context, groupID string) error
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
}
