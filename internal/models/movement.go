package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement represents a row of the movements table joined with its account name.
type Movement struct {
	MovementID      string          `db:"movement_id"`
	AccountID       string          `db:"account_id"`
	AccountName     string          `db:"account_name"`
	MovementType    string          `db:"movement_type"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	ReferenceNumber *string         `db:"reference_number"` // Nullable, unique among active rows
	TransactionDate time.Time       `db:"transaction_date"`
	DueDate         *time.Time      `db:"due_date"`
	PaymentMethod   string          `db:"payment_method"`
	Status          string          `db:"status"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
