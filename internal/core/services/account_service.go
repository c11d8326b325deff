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
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	groupRepo   portsrepo.GroupTxSupport
	dependents  []portssvc.DependencyCounter
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithGroupLocks enables group existence checks for group_id. The referenced group row is
// share-locked for the rest of the write so it cannot be deleted underneath the account.
func WithGroupLocks(repo portsrepo.GroupTxSupport) AccountServiceOption {
	return func(s *accountService) {
		s.groupRepo = repo
	}
}

// WithDependencyCounters registers the checks that block account deletion.
func WithDependencyCounters(counters ...portssvc.DependencyCounter) AccountServiceOption {
	return func(s *accountService) {
		s.dependents = append(s.dependents, counters...)
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txManager portsrepo.TransactionManager, repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.AccountRequest, userID string) (*domain.Account, error) {
	req = normalizeAccountRequest(req)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		IsActive:    true,
		Balance:     decimal.Zero,
		AccountType: domain.Customer,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	applyAccountRequest(&account, req)
	if req.Balance != nil {
		account.OpeningBalance = req.Balance.Round(2)
		account.Balance = account.OpeningBalance
	}

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.checkAccountReferences(ctx, tx, req, ""); err != nil {
			return err
		}
		return s.accountRepo.SaveAccount(ctx, tx, account)
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to save account", slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("opening_balance", account.OpeningBalance.String()))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.findActiveAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.listAccounts(ctx, portsrepo.AccountQuery{})
}

func (s *accountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid account type %q", accountType))
	}
	return s.listAccounts(ctx, portsrepo.AccountQuery{AccountType: accountType})
}

func (s *accountService) ListAccountsByGroup(ctx context.Context, groupID string) ([]domain.Account, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, apperrors.NewValidationError("group id is required")
	}
	return s.listAccounts(ctx, portsrepo.AccountQuery{GroupID: groupID})
}

func (s *accountService) SearchAccounts(ctx context.Context, term string) ([]domain.Account, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("search term is required")
	}
	return s.listAccounts(ctx, portsrepo.AccountQuery{Search: term})
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.AccountRequest, userID string) (*domain.Account, error) {
	req = normalizeAccountRequest(req)

	var account *domain.Account
	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		account, err = s.lockActiveAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if err := validateStruct(req); err != nil {
			return err
		}
		if err := s.checkAccountReferences(ctx, tx, req, accountID); err != nil {
			return err
		}

		now := time.Now().UTC()
		applyAccountRequest(account, req)
		account.LastUpdatedAt = now
		account.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccount(ctx, tx, *account); err != nil {
			return err
		}
		if req.Balance == nil {
			return nil
		}
		// Direct balance writes bypass the ledger; a later recalculation will undo them.
		override := req.Balance.Round(2)
		if err := s.accountRepo.SetBalanceInTx(ctx, tx, accountID, override, userID, now); err != nil {
			return err
		}
		s.LogWarn(ctx, "Account balance overridden outside the movement ledger",
			slog.String("account_id", accountID),
			slog.String("previous_balance", account.Balance.String()),
			slog.String("balance", override.String()))
		account.Balance = override
		return nil
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount locks the account row before running the dependency counters. The ledger
// locks the same row before it writes a movement, so no movement can reference the account
// between the count and the deactivation.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if _, err := s.lockActiveAccount(ctx, tx, accountID); err != nil {
			return err
		}

		var dependents int64
		for _, counter := range s.dependents {
			n, err := counter.CountDependents(ctx, tx, accountID)
			if err != nil {
				return err
			}
			dependents += n
		}
		if dependents > 0 {
			return fmt.Errorf("%w: account is referenced by %d record(s)", apperrors.ErrHasDependents, dependents)
		}

		return s.accountRepo.DeactivateAccount(ctx, tx, accountID, userID, time.Now().UTC())
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// lockActiveAccount selects an active account FOR UPDATE.
func (s *accountService) lockActiveAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return account, nil
}

func (s *accountService) findActiveAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return account, nil
}

func (s *accountService) listAccounts(ctx context.Context, query portsrepo.AccountQuery) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("account_type", string(query.AccountType)),
			slog.String("group_id", query.GroupID),
			slog.String("search", query.Search))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// checkAccountReferences runs the checks that read other rows: group existence and
// active-scoped uniqueness. It runs inside the write transaction and holds a shared lock on
// the referenced group until commit. selfID excludes the account being updated from the
// uniqueness checks. The partial unique indexes remain the final arbiter under concurrency.
func (s *accountService) checkAccountReferences(ctx context.Context, tx pgx.Tx, req dto.AccountRequest, selfID string) error {
	if req.GroupID != "" && s.groupRepo != nil {
		if _, err := s.groupRepo.FindGroupByIDForShare(ctx, tx, req.GroupID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrGroupNotFound
			}
			return err
		}
	}

	existing, err := s.accountRepo.FindActiveAccountByName(ctx, tx, req.Name)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if err == nil && existing.AccountID != selfID {
		return apperrors.ErrDuplicateName
	}

	if req.Code != "" {
		existing, err := s.accountRepo.FindActiveAccountByCode(ctx, tx, req.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err == nil && existing.AccountID != selfID {
			return apperrors.ErrDuplicateCode
		}
	}
	return nil
}

func normalizeAccountRequest(req dto.AccountRequest) dto.AccountRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	req.GroupID = strings.TrimSpace(req.GroupID)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Address = strings.TrimSpace(req.Address)
	req.TaxNumber = strings.TrimSpace(req.TaxNumber)
	req.TaxOffice = strings.TrimSpace(req.TaxOffice)
	return req
}

// applyAccountRequest copies profile fields onto account. Balance is handled by the caller.
func applyAccountRequest(account *domain.Account, req dto.AccountRequest) {
	account.Name = req.Name
	account.Code = req.Code
	account.GroupID = req.GroupID
	account.Phone = req.Phone
	account.Email = req.Email
	account.Address = req.Address
	account.TaxNumber = req.TaxNumber
	account.TaxOffice = req.TaxOffice
	if req.AccountType != "" {
		account.AccountType = req.AccountType
	}
}
