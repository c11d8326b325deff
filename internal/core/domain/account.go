package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies the counterparty.
type AccountType string

const (
	Customer AccountType = "customer"
	Supplier AccountType = "supplier"
	Both     AccountType = "both"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Customer, Supplier, Both:
		return true
	}
	return false
}

// Account represents a tracked counterparty and its cached running balance.
// Balance is kept equal to OpeningBalance plus the signed sum of the account's active movements.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`    // Optional; empty when not set
	GroupID        string          `json:"groupID"` // Optional FK -> groups.group_id; empty when not set
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	TaxNumber      string          `json:"taxNumber"`
	TaxOffice      string          `json:"taxOffice"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Fixed at creation
	Balance        decimal.Decimal `json:"balance"`
	AccountType    AccountType     `json:"accountType"`
	IsActive       bool            `json:"isActive"` // Soft delete flag
	AuditFields
}

// BalanceRecalculation reports the result of re-deriving an account balance from its opening
// balance and movements.
type BalanceRecalculation struct {
	AccountID       string          `json:"accountID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	Balance         decimal.Decimal `json:"balance"`
	Drift           decimal.Decimal `json:"drift"`
}
