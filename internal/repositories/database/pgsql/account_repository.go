package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cari_ledger/internal/models"
	"github.com/SscSPs/cari_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, code, group_id, phone, email, address, tax_number, tax_office,
	opening_balance, balance, account_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) findOne(ctx context.Context, q querier, what string, query string, args ...any) (*domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, what, "query account")
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapReadError(err, what, "scan account")
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID regardless of its active flag.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, r.Pool, "account "+accountID,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
}

// FindActiveAccountByName retrieves the active account holding name.
func (r *PgxAccountRepository) FindActiveAccountByName(ctx context.Context, tx pgx.Tx, name string) (*domain.Account, error) {
	return r.findOne(ctx, tx, "account named "+name,
		`SELECT `+accountColumns+` FROM accounts WHERE name = $1 AND is_active = TRUE`, name)
}

// FindActiveAccountByCode retrieves the active account holding code.
func (r *PgxAccountRepository) FindActiveAccountByCode(ctx context.Context, tx pgx.Tx, code string) (*domain.Account, error) {
	return r.findOne(ctx, tx, "account with code "+code,
		`SELECT `+accountColumns+` FROM accounts WHERE code = $1 AND is_active = TRUE`, code)
}

// FindAccountByIDForUpdate selects an account and locks its row until tx ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, tx, "account "+accountID,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID)
}

// ListAccounts retrieves active accounts matching query, ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, query portsrepo.AccountQuery) ([]domain.Account, error) {
	where := []string{"is_active = TRUE"}
	args := []any{}

	if query.AccountType != "" {
		args = append(args, string(query.AccountType))
		where = append(where, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if query.GroupID != "" {
		args = append(args, query.GroupID)
		where = append(where, fmt.Sprintf("group_id = $%d", len(args)))
	}
	if query.Search != "" {
		args = append(args, "%"+escapeLike(query.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%[1]d OR COALESCE(code, '') ILIKE $%[1]d OR phone ILIKE $%[1]d OR email ILIKE $%[1]d)", n))
	}

	sql := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY name ASC`
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapReadError(err, "accounts", "list accounts")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, mapReadError(err, "accounts", "scan accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// SaveAccount inserts a new account. The opening balance is stored twice: as the fixed
// opening_balance and as the starting running balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := tx.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.AccountID, m.Name, m.Code, m.GroupID, m.Phone, m.Email, m.Address, m.TaxNumber, m.TaxOffice,
		m.OpeningBalance, m.Balance, m.AccountType, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save account")
	}
	return nil
}

// UpdateAccount writes profile fields of an active account. The balance column is left alone.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET name = $2, code = $3, group_id = $4, phone = $5, email = $6, address = $7,
		    tax_number = $8, tax_office = $9, account_type = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE account_id = $1 AND is_active = TRUE`,
		m.AccountID, m.Name, m.Code, m.GroupID, m.Phone, m.Email, m.Address,
		m.TaxNumber, m.TaxOffice, m.AccountType, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "update account")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+account.AccountID, "update account")
	}
	return nil
}

// DeactivateAccount soft-deletes an active account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE`,
		accountID, now, userID,
	)
	if err != nil {
		return mapWriteError(err, "deactivate account")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+accountID, "deactivate account")
	}
	return nil
}

// AdjustBalanceInTx adds delta to the stored balance in one statement, so concurrent
// adjustments never overwrite each other.
func (r *PgxAccountRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1`,
		accountID, delta, now, userID,
	)
	if err != nil {
		return mapWriteError(err, "adjust account balance")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+accountID, "adjust account balance")
	}
	return nil
}

// SetBalanceInTx overwrites the stored balance.
func (r *PgxAccountRepository) SetBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1`,
		accountID, balance, now, userID,
	)
	if err != nil {
		return mapWriteError(err, "set account balance")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account "+accountID, "set account balance")
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
