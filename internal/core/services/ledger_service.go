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
	"github.com/SscSPs/cari_ledger/internal/metrics"
	"github.com/SscSPs/cari_ledger/internal/utils/accounting"
	"github.com/SscSPs/cari_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerService is the only component that changes account balances as a side effect of
// movement writes. Every write runs in a single transaction covering the movement row and
// the balance adjustments it implies.
type ledgerService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	metrics      *metrics.Metrics
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerMetrics records operation outcomes and balance adjustments.
func WithLedgerMetrics(m *metrics.Metrics) LedgerServiceOption {
	return func(s *ledgerService) {
		s.metrics = m
	}
}

// NewLedgerService creates the movement ledger service.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	options ...LedgerServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		txManager:    txManager,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateMovement(ctx context.Context, req dto.MovementRequest, userID string) (*domain.Movement, error) {
	movement, err := movementFromRequest(req)
	if err != nil {
		s.metrics.ObserveLedgerOperation("create", err)
		return nil, err
	}

	now := time.Now().UTC()
	movement.MovementID = uuid.NewString()
	movement.IsActive = true
	movement.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	var delta decimal.Decimal
	err = s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		account, err := s.lockActiveAccount(ctx, tx, movement.AccountID)
		if err != nil {
			return err
		}
		movement.AccountName = account.Name

		if err := s.ensureReferenceAvailable(ctx, tx, movement.ReferenceNumber, ""); err != nil {
			return err
		}

		if err := s.movementRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
			return err
		}

		delta, err = accounting.Delta(movement.MovementType, movement.Amount, accounting.Add)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return s.accountRepo.AdjustBalanceInTx(ctx, tx, movement.AccountID, delta, userID, now)
	})
	s.metrics.ObserveLedgerOperation("create", err)
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to create movement", slog.String("account_id", movement.AccountID))
		return nil, err
	}
	s.metrics.ObserveBalanceAdjustments(delta)

	s.LogInfo(ctx, "Movement created",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", movement.AccountID),
		slog.String("delta", delta.String()))
	return &movement, nil
}

func (s *ledgerService) UpdateMovement(ctx context.Context, movementID string, req dto.MovementRequest, userID string) (*domain.Movement, error) {
	var updated domain.Movement
	var reversal, delta decimal.Decimal

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		old, err := s.lockActiveMovement(ctx, tx, movementID)
		if err != nil {
			return err
		}

		updated, err = movementFromRequest(req)
		if err != nil {
			return err
		}

		account, err := s.lockActiveAccount(ctx, tx, updated.AccountID)
		if err != nil {
			return err
		}

		if updated.ReferenceNumber != old.ReferenceNumber {
			if err := s.ensureReferenceAvailable(ctx, tx, updated.ReferenceNumber, movementID); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		updated.MovementID = old.MovementID
		updated.IsActive = true
		updated.AccountName = account.Name
		updated.AuditFields = domain.AuditFields{
			CreatedAt:     old.CreatedAt,
			CreatedBy:     old.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}

		// The old contribution is reversed on the old account before the row changes;
		// the new contribution then lands on the (possibly different) new account.
		reversal, err = accounting.Delta(old.MovementType, old.Amount, accounting.Subtract)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if err := s.accountRepo.AdjustBalanceInTx(ctx, tx, old.AccountID, reversal, userID, now); err != nil {
			return err
		}

		if err := s.movementRepo.UpdateMovementInTx(ctx, tx, updated); err != nil {
			return err
		}

		delta, err = accounting.Delta(updated.MovementType, updated.Amount, accounting.Add)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return s.accountRepo.AdjustBalanceInTx(ctx, tx, updated.AccountID, delta, userID, now)
	})
	s.metrics.ObserveLedgerOperation("update", err)
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to update movement", slog.String("movement_id", movementID))
		return nil, err
	}
	s.metrics.ObserveBalanceAdjustments(reversal, delta)

	s.LogInfo(ctx, "Movement updated",
		slog.String("movement_id", movementID),
		slog.String("account_id", updated.AccountID),
		slog.String("reversal", reversal.String()),
		slog.String("delta", delta.String()))
	return &updated, nil
}

func (s *ledgerService) DeleteMovement(ctx context.Context, movementID string, userID string) error {
	var reversal decimal.Decimal

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		old, err := s.lockActiveMovement(ctx, tx, movementID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := s.movementRepo.DeactivateMovementInTx(ctx, tx, movementID, userID, now); err != nil {
			return err
		}

		reversal, err = accounting.Delta(old.MovementType, old.Amount, accounting.Subtract)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return s.accountRepo.AdjustBalanceInTx(ctx, tx, old.AccountID, reversal, userID, now)
	})
	s.metrics.ObserveLedgerOperation("delete", err)
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to delete movement", slog.String("movement_id", movementID))
		return err
	}
	s.metrics.ObserveBalanceAdjustments(reversal)

	s.LogInfo(ctx, "Movement deleted",
		slog.String("movement_id", movementID),
		slog.String("reversal", reversal.String()))
	return nil
}

func (s *ledgerService) RecalculateAccountBalance(ctx context.Context, accountID string, userID string) (*domain.BalanceRecalculation, error) {
	var result domain.BalanceRecalculation

	err := s.withTx(ctx, s.txManager, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return apperrors.NewNotFoundError("account " + accountID)
		}

		sum, err := s.movementRepo.SumActiveMovementsByAccountInTx(ctx, tx, accountID)
		if err != nil {
			return err
		}

		expected := account.OpeningBalance.Add(sum)
		result = domain.BalanceRecalculation{
			AccountID:       accountID,
			OpeningBalance:  account.OpeningBalance,
			PreviousBalance: account.Balance,
			Balance:         expected,
			Drift:           expected.Sub(account.Balance),
		}
		if result.Drift.IsZero() {
			return nil
		}
		return s.accountRepo.SetBalanceInTx(ctx, tx, accountID, expected, userID, time.Now().UTC())
	})
	s.metrics.ObserveLedgerOperation("recalculate", err)
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to recalculate account balance", slog.String("account_id", accountID))
		return nil, err
	}

	if !result.Drift.IsZero() {
		s.LogWarn(ctx, "Account balance drift repaired",
			slog.String("account_id", accountID),
			slog.String("previous_balance", result.PreviousBalance.String()),
			slog.String("balance", result.Balance.String()),
			slog.String("drift", result.Drift.String()))
	}
	return &result, nil
}

func (s *ledgerService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find movement", slog.String("movement_id", movementID))
		}
		return nil, err
	}
	if !movement.IsActive {
		return nil, apperrors.NewNotFoundError("movement " + movementID)
	}
	return movement, nil
}

func (s *ledgerService) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	movements, err := s.movementRepo.ListActiveMovements(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, err
	}
	if movements == nil {
		return []domain.Movement{}, nil
	}
	return movements, nil
}

func (s *ledgerService) ListMovementsFiltered(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, int64, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	movements, total, err := s.movementRepo.ListMovementsFiltered(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list filtered movements",
			slog.Int("limit", filter.Limit),
			slog.Int("offset", filter.Offset))
		return nil, 0, err
	}
	if movements == nil {
		movements = []domain.Movement{}
	}
	return movements, total, nil
}

func (s *ledgerService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.ListByAccountParams) (*dto.ListMovementsByAccountResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}

	var after *pagination.Cursor
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = &cursor
	}

	limit := pagination.ClampLimit(params.Limit)
	// One extra row tells us whether another page exists.
	movements, err := s.movementRepo.ListMovementsByAccount(ctx, accountID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements by account", slog.String("account_id", accountID))
		return nil, err
	}

	resp := &dto.ListMovementsByAccountResponse{}
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(pagination.Cursor{
			TransactionDate: last.TransactionDate,
			CreatedAt:       last.CreatedAt,
			ID:              last.MovementID,
		})
		resp.NextToken = &token
	}
	resp.Movements = dto.ToMovementResponses(movements)
	return resp, nil
}

func (s *ledgerService) SummaryByType(ctx context.Context) ([]domain.MovementTypeSummary, error) {
	summary, err := s.movementRepo.SummarizeByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize movements by type")
		return nil, err
	}
	if summary == nil {
		return []domain.MovementTypeSummary{}, nil
	}
	return summary, nil
}

// lockActiveAccount locks the referenced account row; a missing or inactive account is
// reported as ErrAccountNotFound.
func (s *ledgerService) lockActiveAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *ledgerService) lockActiveMovement(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByIDForUpdate(ctx, tx, movementID)
	if err != nil {
		return nil, err
	}
	if !movement.IsActive {
		return nil, apperrors.NewNotFoundError("movement " + movementID)
	}
	return movement, nil
}

// ensureReferenceAvailable fails with ErrDuplicateReference when another active movement
// holds reference. An empty reference is always available.
func (s *ledgerService) ensureReferenceAvailable(ctx context.Context, tx pgx.Tx, reference string, selfID string) error {
	if reference == "" {
		return nil
	}
	existing, err := s.movementRepo.FindActiveMovementByReference(ctx, tx, reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.MovementID != selfID {
		return apperrors.ErrDuplicateReference
	}
	return nil
}

// movementFromRequest validates a full movement field set and converts it to a domain value.
func movementFromRequest(req dto.MovementRequest) (domain.Movement, error) {
	req.AccountID = strings.TrimSpace(req.AccountID)
	req.ReferenceNumber = strings.TrimSpace(req.ReferenceNumber)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateStruct(req); err != nil {
		return domain.Movement{}, err
	}

	if !req.Amount.IsPositive() {
		return domain.Movement{}, apperrors.NewValidationError("amount must be greater than zero")
	}
	amount := req.Amount.Round(2)
	if amount.GreaterThan(domain.MaxMovementAmount) {
		return domain.Movement{}, apperrors.NewValidationError("amount must not exceed " + domain.MaxMovementAmount.StringFixed(2))
	}
	if amount.IsZero() {
		return domain.Movement{}, apperrors.NewValidationError("amount must be greater than zero")
	}

	txDate, err := time.Parse(dto.DateLayout, req.TransactionDate)
	if err != nil {
		return domain.Movement{}, apperrors.NewValidationError("transactionDate must be a date in YYYY-MM-DD format")
	}

	movement := domain.Movement{
		AccountID:       req.AccountID,
		MovementType:    req.Type,
		Amount:          amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		TransactionDate: txDate,
		PaymentMethod:   req.PaymentMethod,
		Status:          req.Status,
	}
	if req.DueDate != "" {
		due, err := time.Parse(dto.DateLayout, req.DueDate)
		if err != nil {
			return domain.Movement{}, apperrors.NewValidationError("dueDate must be a date in YYYY-MM-DD format")
		}
		movement.DueDate = &due
	}
	if movement.PaymentMethod == "" {
		movement.PaymentMethod = domain.Cash
	}
	if movement.Status == "" {
		movement.Status = domain.Completed
	}
	return movement, nil
}

// normalizeFilter validates the filter and applies the paging defaults.
func normalizeFilter(f domain.MovementFilter) (domain.MovementFilter, error) {
	if f.MovementType != "" && !f.MovementType.IsValid() {
		return f, apperrors.NewValidationError(fmt.Sprintf("invalid movement type %q", f.MovementType))
	}
	if f.Status != "" && !f.Status.IsValid() {
		return f, apperrors.NewValidationError(fmt.Sprintf("invalid status %q", f.Status))
	}
	if f.PaymentMethod != "" && !f.PaymentMethod.IsValid() {
		return f, apperrors.NewValidationError(fmt.Sprintf("invalid payment method %q", f.PaymentMethod))
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return f, apperrors.NewValidationError("minAmount must not exceed maxAmount")
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return f, apperrors.NewValidationError("startDate must not be after endDate")
	}
	if f.Offset < 0 {
		return f, apperrors.NewValidationError("offset must not be negative")
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Limit = pagination.ClampLimit(f.Limit)
	return f, nil
}
