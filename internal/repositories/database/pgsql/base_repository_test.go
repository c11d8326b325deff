package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"account name index", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "ux_accounts_name_active"}, apperrors.ErrDuplicateName},
		{"account code index", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "ux_accounts_code_active"}, apperrors.ErrDuplicateCode},
		{"movement reference index", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "ux_movements_reference_active"}, apperrors.ErrDuplicateReference},
		{"other unique index", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_pkey"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "accounts_group_id_fkey"}, apperrors.ErrValidation},
		{"check", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "movements_amount_check"}, apperrors.ErrValidation},
		{"anything else", errors.New("connection refused"), apperrors.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError(tt.err, "save"), tt.want)
		})
	}
}

func TestMapReadError(t *testing.T) {
	assert.ErrorIs(t, mapReadError(pgx.ErrNoRows, "account a1", "find"), apperrors.ErrNotFound)

	err := mapReadError(errors.New("timeout"), "account a1", "find")
	assert.ErrorIs(t, err, apperrors.ErrInternal)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuildMovementFilter(t *testing.T) {
	minAmount := decimal.NewFromInt(10)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	where, args := buildMovementFilter(domain.MovementFilter{
		AccountID:    "a1",
		MovementType: domain.Income,
		MinAmount:    &minAmount,
		StartDate:    &start,
		Search:       "50%_off",
	})

	assert.Equal(t,
		"m.is_active = TRUE AND m.account_id = $1 AND m.movement_type = $2 AND m.amount >= $3"+
			" AND m.transaction_date >= $4::date"+
			" AND (m.description ILIKE $5 OR COALESCE(m.reference_number, '') ILIKE $5)",
		where)
	assert.Equal(t, []any{"a1", "income", minAmount, start, `%50\%\_off%`}, args)
}

func TestBuildMovementFilter_Empty(t *testing.T) {
	where, args := buildMovementFilter(domain.MovementFilter{})
	assert.Equal(t, "m.is_active = TRUE", where)
	assert.Empty(t, args)
}
