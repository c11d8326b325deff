package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType carries the direction of a movement; amounts are always positive.
type MovementType string

const (
	Income     MovementType = "income"
	Expense    MovementType = "expense"
	Receivable MovementType = "receivable"
	Payable    MovementType = "payable"
)

// IsValid reports whether t is one of the known movement types.
func (t MovementType) IsValid() bool {
	switch t {
	case Income, Expense, Receivable, Payable:
		return true
	}
	return false
}

// PaymentMethod describes how a movement was settled.
type PaymentMethod string

const (
	Cash         PaymentMethod = "cash"
	BankTransfer PaymentMethod = "bank_transfer"
	Check        PaymentMethod = "check"
	CreditCard   PaymentMethod = "credit_card"
)

// IsValid reports whether m is one of the known payment methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case Cash, BankTransfer, Check, CreditCard:
		return true
	}
	return false
}

// MovementStatus is the processing state of a movement.
type MovementStatus string

const (
	Completed MovementStatus = "completed"
	Pending   MovementStatus = "pending"
	Cancelled MovementStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses.
func (s MovementStatus) IsValid() bool {
	switch s {
	case Completed, Pending, Cancelled:
		return true
	}
	return false
}

// MaxMovementAmount is the largest amount a single movement may carry.
var MaxMovementAmount = decimal.RequireFromString("999999999.99")

// Movement is a single financial event affecting exactly one account's balance.
type Movement struct {
	MovementID      string          `json:"movementID"`
	AccountID       string          `json:"accountID"`
	MovementType    MovementType    `json:"type"`
	Amount          decimal.Decimal `json:"amount"` // Always > 0
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"` // Optional; unique among active movements
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          MovementStatus  `json:"status"`
	IsActive        bool            `json:"isActive"`
	AccountName     string          `json:"accountName,omitempty"` // Populated on reads joined with accounts
	AuditFields
}

// MovementFilter is the typed query object for filtered movement listings.
// Nil/empty fields are not applied.
type MovementFilter struct {
	AccountID     string
	MovementType  MovementType
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
	Status        MovementStatus
	PaymentMethod PaymentMethod
	Limit         int
	Offset        int
}

// MovementTypeSummary aggregates active movements of one type.
type MovementTypeSummary struct {
	MovementType MovementType    `json:"type"`
	Count        int64           `json:"count"`
	Total        decimal.Decimal `json:"total"`
	Average      decimal.Decimal `json:"average"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
}
