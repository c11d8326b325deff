package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
// Nullable columns are pointers so NULL survives a round trip.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	Code           *string         `db:"code"`     // Nullable, unique among active rows
	GroupID        *string         `db:"group_id"` // Nullable FK -> account_groups.group_id
	Phone          string          `db:"phone"`
	Email          string          `db:"email"`
	Address        string          `db:"address"`
	TaxNumber      string          `db:"tax_number"`
	TaxOffice      string          `db:"tax_office"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"`
	AccountType    string          `db:"account_type"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
