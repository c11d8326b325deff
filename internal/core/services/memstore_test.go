package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cari_ledger/internal/utils/accounting"
	"github.com/SscSPs/cari_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memTx stands in for a pgx transaction. Only identity matters to the store.
type memTx struct {
	pgx.Tx
	snapshot  memState
	committed bool
}

type memState struct {
	groups    map[string]domain.Group
	accounts  map[string]domain.Account
	movements map[string]domain.Movement
}

func (s memState) clone() memState {
	c := memState{
		groups:    make(map[string]domain.Group, len(s.groups)),
		accounts:  make(map[string]domain.Account, len(s.accounts)),
		movements: make(map[string]domain.Movement, len(s.movements)),
	}
	for k, v := range s.groups {
		c.groups[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	return c
}

// memStore is an in-memory implementation of every repository port. Rollback restores the
// state captured at Begin, so multi-step failures can be asserted on.
type memStore struct {
	mu       sync.Mutex
	state    memState
	settings map[string]domain.Setting

	failAdjustOn string // AdjustBalanceInTx fails for this account ID
	failSaveMove error
	commits      int
	rollbacks    int

	// events records row locks and dependency counts in call order, for example
	// "lock account a1" or "count movements a1".
	events []string
	openTx *memTx
}

func (m *memStore) record(event string) {
	m.events = append(m.events, event)
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			groups:    map[string]domain.Group{},
			accounts:  map[string]domain.Account{},
			movements: map[string]domain.Movement{},
		},
		settings: map[string]domain.Setting{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    m,
		GroupRepo:    m,
		AccountRepo:  m,
		MovementRepo: m,
		SettingRepo:  m,
	}
}

var (
	_ portsrepo.TransactionManager       = (*memStore)(nil)
	_ portsrepo.GroupRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.MovementRepositoryFacade = (*memStore)(nil)
	_ portsrepo.SettingRepository        = (*memStore)(nil)
)

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openTx = &memTx{snapshot: m.state.clone()}
	return m.openTx, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.(*memTx).committed = true
	m.commits++
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := tx.(*memTx)
	if t.committed {
		return nil
	}
	m.state = t.snapshot
	t.committed = true
	m.rollbacks++
	return nil
}

// --- Groups ---

func (m *memStore) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.state.groups[groupID]
	if !ok {
		return nil, apperrors.NewNotFoundError("group " + groupID)
	}
	return &g, nil
}

func (m *memStore) FindGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.state.groups {
		if g.Name == name {
			return &g, nil
		}
	}
	return nil, apperrors.NewNotFoundError("group " + name)
}

func (m *memStore) ListGroups(ctx context.Context) ([]domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Group, 0, len(m.state.groups))
	for _, g := range m.state.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) CountLinkedAccounts(ctx context.Context, groupID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.state.accounts {
		if a.IsActive && a.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	m.mu.Lock()
	m.record("lock group " + groupID)
	m.mu.Unlock()
	return m.FindGroupByID(ctx, groupID)
}

func (m *memStore) FindGroupByIDForShare(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	m.mu.Lock()
	m.record("share group " + groupID)
	m.mu.Unlock()
	return m.FindGroupByID(ctx, groupID)
}

func (m *memStore) CountLinkedAccountsInTx(ctx context.Context, tx pgx.Tx, groupID string) (int64, error) {
	m.mu.Lock()
	m.record("count accounts " + groupID)
	m.mu.Unlock()
	return m.CountLinkedAccounts(ctx, groupID)
}

func (m *memStore) SaveGroup(ctx context.Context, group domain.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.groups[group.GroupID] = group
	return nil
}

func (m *memStore) UpdateGroup(ctx context.Context, group domain.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.groups[group.GroupID]; !ok {
		return apperrors.NewNotFoundError("group " + group.GroupID)
	}
	m.state.groups[group.GroupID] = group
	return nil
}

func (m *memStore) DeleteGroup(ctx context.Context, tx pgx.Tx, groupID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.groups[groupID]; !ok {
		return apperrors.NewNotFoundError("group " + groupID)
	}
	delete(m.state.groups, groupID)
	for id, a := range m.state.accounts {
		if a.GroupID == groupID {
			a.GroupID = ""
			m.state.accounts[id] = a
		}
	}
	return nil
}

// --- Accounts ---

func (m *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &a, nil
}

func (m *memStore) FindActiveAccountByName(ctx context.Context, tx pgx.Tx, name string) (*domain.Account, error) {
	return m.findActiveAccount(func(a domain.Account) bool { return a.Name == name })
}

func (m *memStore) FindActiveAccountByCode(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	return m.findActiveAccount(func(a domain.Account) bool { return a.Code != "" && a.Code == code })
}

func (m *memStore) findActiveAccount(match func(domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.accounts {
		if a.IsActive && match(a) {
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListAccounts(ctx context.Context, q portsrepo.AccountQuery) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term := strings.ToLower(q.Search)
	out := []domain.Account{}
	for _, a := range m.state.accounts {
		if !a.IsActive {
			continue
		}
		if q.AccountType != "" && a.AccountType != q.AccountType {
			continue
		}
		if q.GroupID != "" && a.GroupID != q.GroupID {
			continue
		}
		if term != "" {
			hay := strings.ToLower(strings.Join([]string{a.Name, a.Code, a.Phone, a.Email}, "\x00"))
			if !strings.Contains(hay, term) {
				continue
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.state.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account " + account.AccountID)
	}
	account.Balance = stored.Balance
	m.state.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) DeactivateAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[accountID]
	if !ok || !a.IsActive {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	a.IsActive = false
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	m.state.accounts[accountID] = a
	return nil
}

func (m *memStore) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	m.record("lock account " + accountID)
	m.mu.Unlock()
	return m.FindAccountByID(ctx, accountID)
}

func (m *memStore) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdjustOn == accountID {
		return apperrors.NewAppError(500, "failed to adjust balance", errors.New("connection reset"))
	}
	a, ok := m.state.accounts[accountID]
	if !ok {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	a.Balance = a.Balance.Add(delta)
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	m.state.accounts[accountID] = a
	return nil
}

func (m *memStore) SetBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[accountID]
	if !ok {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	a.Balance = balance
	m.state.accounts[accountID] = a
	return nil
}

// corruptBalance writes a balance without going through any service, simulating drift.
func (m *memStore) corruptBalance(accountID string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.state.accounts[accountID]
	a.Balance = balance
	m.state.accounts[accountID] = a
}

// --- Movements ---

func (m *memStore) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.state.movements[movementID]
	if !ok {
		return nil, apperrors.NewNotFoundError("movement " + movementID)
	}
	return &mv, nil
}

func (m *memStore) activeMovements(match func(domain.Movement) bool) []domain.Movement {
	out := []domain.Movement{}
	for _, mv := range m.state.movements {
		if mv.IsActive && (match == nil || match(mv)) {
			out = append(out, mv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return movementBefore(out[i], out[j]) })
	return out
}

// movementBefore orders by transaction_date DESC, created_at DESC, id DESC.
func movementBefore(a, b domain.Movement) bool {
	if !a.TransactionDate.Equal(b.TransactionDate) {
		return a.TransactionDate.After(b.TransactionDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.MovementID > b.MovementID
}

func (m *memStore) ListActiveMovements(ctx context.Context) ([]domain.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeMovements(nil), nil
}

func (m *memStore) ListMovementsFiltered(ctx context.Context, f domain.MovementFilter) ([]domain.Movement, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term := strings.ToLower(f.Search)
	all := m.activeMovements(func(mv domain.Movement) bool {
		switch {
		case f.AccountID != "" && mv.AccountID != f.AccountID,
			f.MovementType != "" && mv.MovementType != f.MovementType,
			f.Status != "" && mv.Status != f.Status,
			f.PaymentMethod != "" && mv.PaymentMethod != f.PaymentMethod,
			f.MinAmount != nil && mv.Amount.LessThan(*f.MinAmount),
			f.MaxAmount != nil && mv.Amount.GreaterThan(*f.MaxAmount),
			f.StartDate != nil && mv.TransactionDate.Before(*f.StartDate),
			f.EndDate != nil && mv.TransactionDate.After(*f.EndDate):
			return false
		}
		if term != "" {
			return strings.Contains(strings.ToLower(mv.Description), term) ||
				strings.Contains(strings.ToLower(mv.ReferenceNumber), term)
		}
		return true
	})
	total := int64(len(all))
	if f.Offset >= len(all) {
		return []domain.Movement{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[f.Offset:end], total, nil
}

func (m *memStore) ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *pagination.Cursor) ([]domain.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.activeMovements(func(mv domain.Movement) bool { return mv.AccountID == accountID })
	out := []domain.Movement{}
	for _, mv := range all {
		if after != nil {
			cursorRow := domain.Movement{
				MovementID:      after.ID,
				TransactionDate: after.TransactionDate,
				AuditFields:     domain.AuditFields{CreatedAt: after.CreatedAt},
			}
			if !movementBefore(cursorRow, mv) {
				continue
			}
		}
		out = append(out, mv)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) SummarizeByType(ctx context.Context) ([]domain.MovementTypeSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byType := map[domain.MovementType]*domain.MovementTypeSummary{}
	for _, mv := range m.activeMovements(nil) {
		s, ok := byType[mv.MovementType]
		if !ok {
			s = &domain.MovementTypeSummary{MovementType: mv.MovementType, Min: mv.Amount, Max: mv.Amount}
			byType[mv.MovementType] = s
		}
		s.Count++
		s.Total = s.Total.Add(mv.Amount)
		s.Min = decimal.Min(s.Min, mv.Amount)
		s.Max = decimal.Max(s.Max, mv.Amount)
	}
	out := make([]domain.MovementTypeSummary, 0, len(byType))
	for _, s := range byType {
		s.Average = s.Total.Div(decimal.NewFromInt(s.Count)).Round(2)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

func (m *memStore) CountActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("count movements " + accountID)
	return int64(len(m.activeMovements(func(mv domain.Movement) bool { return mv.AccountID == accountID }))), nil
}

func (m *memStore) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error) {
	return m.FindMovementByID(ctx, movementID)
}

func (m *memStore) FindActiveMovementByReference(ctx context.Context, tx pgx.Tx, reference string) (*domain.Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mv := range m.state.movements {
		if mv.IsActive && mv.ReferenceNumber == reference {
			return &mv, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSaveMove != nil {
		return m.failSaveMove
	}
	m.state.movements[movement.MovementID] = movement
	return nil
}

func (m *memStore) UpdateMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.movements[movement.MovementID]; !ok {
		return apperrors.NewNotFoundError("movement " + movement.MovementID)
	}
	m.state.movements[movement.MovementID] = movement
	return nil
}

func (m *memStore) DeactivateMovementInTx(ctx context.Context, tx pgx.Tx, movementID string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv, ok := m.state.movements[movementID]
	if !ok || !mv.IsActive {
		return apperrors.NewNotFoundError("movement " + movementID)
	}
	mv.IsActive = false
	mv.LastUpdatedAt = now
	mv.LastUpdatedBy = userID
	m.state.movements[movementID] = mv
	return nil
}

func (m *memStore) SumActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return accounting.SignedSum(m.activeMovements(func(mv domain.Movement) bool { return mv.AccountID == accountID }))
}

// --- Settings ---

func (m *memStore) FindSettingByName(ctx context.Context, name string) (*domain.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("setting " + name)
	}
	return &s, nil
}

func (m *memStore) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return m.listSettings(func(domain.Setting) bool { return true }), nil
}

func (m *memStore) ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	return m.listSettings(func(s domain.Setting) bool { return s.Category == category }), nil
}

func (m *memStore) listSettings(match func(domain.Setting) bool) []domain.Setting {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Setting{}
	for _, s := range m.settings {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memStore) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.settings[setting.Name]; ok {
		setting.CreatedAt = existing.CreatedAt
	}
	m.settings[setting.Name] = setting
	return nil
}

func (m *memStore) InsertSettingIfMissing(ctx context.Context, setting domain.Setting) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settings[setting.Name]; ok {
		return false, nil
	}
	m.settings[setting.Name] = setting
	return true, nil
}

func (m *memStore) DeleteSetting(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settings[name]; !ok {
		return apperrors.NewNotFoundError("setting " + name)
	}
	delete(m.settings, name)
	return nil
}

