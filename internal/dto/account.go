package dto

import (
	"time"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRequest defines the data needed to create or update an account.
// Updates replace every profile field; Balance is only written when supplied.
type AccountRequest struct {
	Name        string             `json:"name" validate:"required,min=2,max=255"`
	Code        string             `json:"code" validate:"omitempty,min=2,max=50"`
	GroupID     string             `json:"groupID"`
	Phone       string             `json:"phone" validate:"max=20"`
	Email       string             `json:"email" validate:"omitempty,email,email_tld"`
	Address     string             `json:"address" validate:"max=500"`
	TaxNumber   string             `json:"taxNumber" validate:"max=20"`
	TaxOffice   string             `json:"taxOffice" validate:"max=100"`
	AccountType domain.AccountType `json:"accountType" validate:"omitempty,oneof=customer supplier both"`
	Balance     *decimal.Decimal   `json:"balance" validate:"-"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	Code           string             `json:"code,omitempty"`
	GroupID        string             `json:"groupID,omitempty"`
	Phone          string             `json:"phone,omitempty"`
	Email          string             `json:"email,omitempty"`
	Address        string             `json:"address,omitempty"`
	TaxNumber      string             `json:"taxNumber,omitempty"`
	TaxOffice      string             `json:"taxOffice,omitempty"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Balance        decimal.Decimal    `json:"balance"`
	AccountType    domain.AccountType `json:"accountType"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy  string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		Code:           acc.Code,
		GroupID:        acc.GroupID,
		Phone:          acc.Phone,
		Email:          acc.Email,
		Address:        acc.Address,
		TaxNumber:      acc.TaxNumber,
		TaxOffice:      acc.TaxOffice,
		OpeningBalance: acc.OpeningBalance,
		Balance:        acc.Balance,
		AccountType:    acc.AccountType,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
