package handlers_test

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock GroupService ---
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}
func (m *MockGroupService) CountLinkedAccounts(ctx context.Context, groupID string) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockGroupService) CreateGroup(ctx context.Context, req dto.GroupRequest, userID string) (*domain.Group, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupService) UpdateGroup(ctx context.Context, groupID string, req dto.GroupRequest, userID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}
func (m *MockGroupService) DeleteGroup(ctx context.Context, groupID string) error {
	return m.Called(ctx, groupID).Error(0)
}

var _ portssvc.GroupSvcFacade = (*MockGroupService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) accounts(args mock.Arguments) ([]domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx))
}
func (m *MockAccountService) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, accountType))
}
func (m *MockAccountService) ListAccountsByGroup(ctx context.Context, groupID string) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, groupID))
}
func (m *MockAccountService) SearchAccounts(ctx context.Context, term string) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, term))
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.AccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.AccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	return m.Called(ctx, accountID, userID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockLedgerService) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}
func (m *MockLedgerService) ListMovementsFiltered(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Movement), args.Get(1).(int64), args.Error(2)
}
func (m *MockLedgerService) ListMovementsByAccount(ctx context.Context, accountID string, params dto.ListByAccountParams) (*dto.ListMovementsByAccountResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMovementsByAccountResponse), args.Error(1)
}
func (m *MockLedgerService) SummaryByType(ctx context.Context) ([]domain.MovementTypeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementTypeSummary), args.Error(1)
}
func (m *MockLedgerService) CreateMovement(ctx context.Context, req dto.MovementRequest, userID string) (*domain.Movement, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockLedgerService) UpdateMovement(ctx context.Context, movementID string, req dto.MovementRequest, userID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockLedgerService) DeleteMovement(ctx context.Context, movementID string, userID string) error {
	return m.Called(ctx, movementID, userID).Error(0)
}
func (m *MockLedgerService) RecalculateAccountBalance(ctx context.Context, accountID string, userID string) (*domain.BalanceRecalculation, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceRecalculation), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock SettingService ---
type MockSettingService struct {
	mock.Mock
}

func (m *MockSettingService) GetSetting(ctx context.Context, name string) (*domain.Setting, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *MockSettingService) SetSetting(ctx context.Context, req dto.SettingRequest) (*domain.Setting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}
func (m *MockSettingService) DeleteSetting(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
func (m *MockSettingService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingService) ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingService) BulkSetSettings(ctx context.Context, reqs []dto.SettingRequest) []domain.BulkSettingResult {
	return m.Called(ctx, reqs).Get(0).([]domain.BulkSettingResult)
}
func (m *MockSettingService) InitializeDefaults(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portssvc.SettingSvcFacade = (*MockSettingService)(nil)
