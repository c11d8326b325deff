package mapping

import (
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Name:           d.Name,
		Code:           nullableString(d.Code),
		GroupID:        nullableString(d.GroupID),
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		TaxNumber:      d.TaxNumber,
		TaxOffice:      d.TaxOffice,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		AccountType:    string(d.AccountType),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		Code:           derefString(m.Code),
		GroupID:        derefString(m.GroupID),
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		TaxNumber:      m.TaxNumber,
		TaxOffice:      m.TaxOffice,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		AccountType:    domain.AccountType(m.AccountType),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
