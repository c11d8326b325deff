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
	"github.com/SscSPs/cari_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const movementSelect = `
	SELECT m.movement_id, m.account_id, a.name AS account_name, m.movement_type, m.amount,
	       m.description, m.reference_number, m.transaction_date, m.due_date, m.payment_method,
	       m.status, m.is_active, m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
	FROM movements m
	JOIN accounts a ON a.account_id = m.account_id`

const movementOrder = ` ORDER BY m.transaction_date DESC, m.created_at DESC, m.movement_id DESC`

// signedAmount is the SQL form of the balance direction rule.
const signedAmount = `CASE WHEN m.movement_type IN ('income', 'receivable') THEN m.amount ELSE -m.amount END`

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func (r *PgxMovementRepository) findOne(ctx context.Context, q querier, what string, query string, args ...any) (*domain.Movement, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, what, "query movement")
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		return nil, mapReadError(err, what, "scan movement")
	}
	mv := mapping.ToDomainMovement(m)
	return &mv, nil
}

func (r *PgxMovementRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Movement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, "movements", "list movements")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movement])
	if err != nil {
		return nil, mapReadError(err, "movements", "scan movements")
	}
	return mapping.ToDomainMovementSlice(ms), nil
}

// FindMovementByID retrieves a movement by ID regardless of its active flag.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	return r.findOne(ctx, r.Pool, "movement "+movementID, movementSelect+` WHERE m.movement_id = $1`, movementID)
}

// FindMovementByIDForUpdate selects a movement and locks its row until tx ends.
func (r *PgxMovementRepository) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.Movement, error) {
	return r.findOne(ctx, tx, "movement "+movementID,
		movementSelect+` WHERE m.movement_id = $1 FOR UPDATE OF m`, movementID)
}

// FindActiveMovementByReference retrieves the active movement holding reference.
func (r *PgxMovementRepository) FindActiveMovementByReference(ctx context.Context, tx pgx.Tx, reference string) (*domain.Movement, error) {
	return r.findOne(ctx, tx, "movement with reference "+reference,
		movementSelect+` WHERE m.reference_number = $1 AND m.is_active = TRUE`, reference)
}

// ListActiveMovements retrieves every active movement, newest first.
func (r *PgxMovementRepository) ListActiveMovements(ctx context.Context) ([]domain.Movement, error) {
	return r.findMany(ctx, movementSelect+` WHERE m.is_active = TRUE`+movementOrder)
}

// ListMovementsFiltered returns one page of matches and the total match count. Both queries
// share the same predicate.
func (r *PgxMovementRepository) ListMovementsFiltered(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, int64, error) {
	where, args := buildMovementFilter(filter)

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM movements m WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, mapReadError(err, "movements", "count movements")
	}

	pageArgs := append(append([]any{}, args...), filter.Limit, filter.Offset)
	query := fmt.Sprintf(`%s WHERE %s%s LIMIT $%d OFFSET $%d`,
		movementSelect, where, movementOrder, len(args)+1, len(args)+2)
	movements, err := r.findMany(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// buildMovementFilter renders the WHERE clause for filter with positional arguments.
func buildMovementFilter(f domain.MovementFilter) (string, []any) {
	where := []string{"m.is_active = TRUE"}
	args := []any{}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if f.AccountID != "" {
		add("m.account_id = $%d", f.AccountID)
	}
	if f.MovementType != "" {
		add("m.movement_type = $%d", string(f.MovementType))
	}
	if f.MinAmount != nil {
		add("m.amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add("m.amount <= $%d", *f.MaxAmount)
	}
	if f.StartDate != nil {
		add("m.transaction_date >= $%d::date", *f.StartDate)
	}
	if f.EndDate != nil {
		add("m.transaction_date <= $%d::date", *f.EndDate)
	}
	if f.Status != "" {
		add("m.status = $%d", string(f.Status))
	}
	if f.PaymentMethod != "" {
		add("m.payment_method = $%d", string(f.PaymentMethod))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(m.description ILIKE $%[1]d OR COALESCE(m.reference_number, '') ILIKE $%[1]d)", n))
	}
	return strings.Join(where, " AND "), args
}

// ListMovementsByAccount returns up to limit active movements of an account after the cursor.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string, limit int, after *pagination.Cursor) ([]domain.Movement, error) {
	if after == nil {
		return r.findMany(ctx,
			movementSelect+` WHERE m.account_id = $1 AND m.is_active = TRUE`+movementOrder+` LIMIT $2`,
			accountID, limit)
	}
	return r.findMany(ctx,
		movementSelect+` WHERE m.account_id = $1 AND m.is_active = TRUE
		  AND (m.transaction_date, m.created_at, m.movement_id) < ($2::date, $3::timestamptz, $4)`+
			movementOrder+` LIMIT $5`,
		accountID, after.TransactionDate, after.CreatedAt, after.ID, limit)
}

// SummarizeByType aggregates active movements per type, largest total first.
func (r *PgxMovementRepository) SummarizeByType(ctx context.Context) ([]domain.MovementTypeSummary, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT movement_type, COUNT(*), SUM(amount), ROUND(AVG(amount), 2), MIN(amount), MAX(amount)
		FROM movements
		WHERE is_active = TRUE
		GROUP BY movement_type
		ORDER BY SUM(amount) DESC`)
	if err != nil {
		return nil, mapReadError(err, "movements", "summarize movements")
	}
	summary, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MovementTypeSummary, error) {
		var s domain.MovementTypeSummary
		var movementType string
		err := row.Scan(&movementType, &s.Count, &s.Total, &s.Average, &s.Min, &s.Max)
		s.MovementType = domain.MovementType(movementType)
		return s, err
	})
	if err != nil {
		return nil, mapReadError(err, "movements", "scan movement summary")
	}
	return summary, nil
}

// CountActiveMovementsByAccountInTx counts active movements referencing the account. Callers
// hold the account row lock, so no movement can be added to the account until tx ends.
func (r *PgxMovementRepository) CountActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE account_id = $1 AND is_active = TRUE`, accountID).Scan(&count)
	if err != nil {
		return 0, mapReadError(err, "account "+accountID, "count account movements")
	}
	return count, nil
}

// SaveMovementInTx inserts a new movement.
func (r *PgxMovementRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	_, err := tx.Exec(ctx, `
		INSERT INTO movements (movement_id, account_id, movement_type, amount, description, reference_number,
		                       transaction_date, due_date, payment_method, status, is_active,
		                       created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.MovementID, m.AccountID, m.MovementType, m.Amount, m.Description, m.ReferenceNumber,
		m.TransactionDate, m.DueDate, m.PaymentMethod, m.Status, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save movement")
	}
	return nil
}

// UpdateMovementInTx replaces every mutable field of an active movement.
func (r *PgxMovementRepository) UpdateMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)
	tag, err := tx.Exec(ctx, `
		UPDATE movements
		SET account_id = $2, movement_type = $3, amount = $4, description = $5, reference_number = $6,
		    transaction_date = $7, due_date = $8, payment_method = $9, status = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE movement_id = $1 AND is_active = TRUE`,
		m.MovementID, m.AccountID, m.MovementType, m.Amount, m.Description, m.ReferenceNumber,
		m.TransactionDate, m.DueDate, m.PaymentMethod, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "update movement")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "movement "+movement.MovementID, "update movement")
	}
	return nil
}

// DeactivateMovementInTx soft-deletes an active movement.
func (r *PgxMovementRepository) DeactivateMovementInTx(ctx context.Context, tx pgx.Tx, movementID string, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE movements
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE movement_id = $1 AND is_active = TRUE`,
		movementID, now, userID,
	)
	if err != nil {
		return mapWriteError(err, "deactivate movement")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "movement "+movementID, "deactivate movement")
	}
	return nil
}

// SumActiveMovementsByAccountInTx returns the signed sum of an account's active movements.
func (r *PgxMovementRepository) SumActiveMovementsByAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+signedAmount+`), 0) FROM movements m WHERE m.account_id = $1 AND m.is_active = TRUE`,
		accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, mapReadError(err, "account "+accountID, "sum account movements")
	}
	return sum, nil
}
