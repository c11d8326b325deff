package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type groupService struct {
	BaseService
	txManager portsrepo.TransactionManager
	groupRepo portsrepo.GroupRepositoryFacade
}

// NewGroupService creates the group registry service.
func NewGroupService(txManager portsrepo.TransactionManager, repo portsrepo.GroupRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{txManager: txManager, groupRepo: repo}
}

var _ portssvc.GroupSvcFacade = (*groupService)(nil)

func (s *groupService) CreateGroup(ctx context.Context, req dto.GroupRequest, userID string) (*domain.Group, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	group := domain.Group{
		GroupID: uuid.NewString(),
		Name:    req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		s.LogError(ctx, err, "Failed to save group", slog.String("name", group.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Group created", slog.String("group_id", group.GroupID), slog.String("name", group.Name))
	return &group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by ID", slog.String("group_id", groupID))
		}
		return nil, err
	}
	return group, nil
}

func (s *groupService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroups(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups")
		return nil, err
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

func (s *groupService) CountLinkedAccounts(ctx context.Context, groupID string) (int64, error) {
	if _, err := s.GetGroupByID(ctx, groupID); err != nil {
		return 0, err
	}
	count, err := s.groupRepo.CountLinkedAccounts(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count linked accounts", slog.String("group_id", groupID))
		return 0, err
	}
	return count, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, groupID string, req dto.GroupRequest, userID string) (*domain.Group, error) {
	group, err := s.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, req.Name, groupID); err != nil {
		return nil, err
	}

	group.Name = req.Name
	group.LastUpdatedAt = time.Now().UTC()
	group.LastUpdatedBy = userID

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		s.LogError(ctx, err, "Failed to update group", slog.String("group_id", groupID))
		return nil, err
	}

	s.LogInfo(ctx, "Group updated", slog.String("group_id", groupID))
	return group, nil
}

// DeleteGroup locks the group row before counting linked accounts. Account writes that link
// to a group take a shared lock on the same row, so no account can join the group between
// the count and the delete.
func (s *groupService) DeleteGroup(ctx context.Context, groupID string) error {
	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if _, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID); err != nil {
			return err
		}
		linked, err := s.groupRepo.CountLinkedAccountsInTx(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if linked > 0 {
			s.LogDebug(ctx, "Refusing to delete group with linked accounts",
				slog.String("group_id", groupID),
				slog.Int64("linked_accounts", linked))
			return fmt.Errorf("%w: group is referenced by %d account(s)", apperrors.ErrHasDependents, linked)
		}
		return s.groupRepo.DeleteGroup(ctx, tx, groupID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrHasDependents) {
			s.LogError(ctx, err, "Failed to delete group", slog.String("group_id", groupID))
		}
		return err
	}

	s.LogInfo(ctx, "Group deleted", slog.String("group_id", groupID))
	return nil
}

// ensureNameAvailable fails with ErrDuplicateName when another group holds name.
func (s *groupService) ensureNameAvailable(ctx context.Context, name string, selfID string) error {
	existing, err := s.groupRepo.FindGroupByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.LogError(ctx, err, "Failed to look up group by name", slog.String("name", name))
		return err
	}
	if existing.GroupID != selfID {
		return apperrors.ErrDuplicateName
	}
	return nil
}
