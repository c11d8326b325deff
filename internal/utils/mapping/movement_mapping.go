package mapping

import (
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/models"
)

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:      d.MovementID,
		AccountID:       d.AccountID,
		AccountName:     d.AccountName,
		MovementType:    string(d.MovementType),
		Amount:          d.Amount,
		Description:     d.Description,
		ReferenceNumber: nullableString(d.ReferenceNumber),
		TransactionDate: d.TransactionDate,
		DueDate:         d.DueDate,
		PaymentMethod:   string(d.PaymentMethod),
		Status:          string(d.Status),
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:      m.MovementID,
		AccountID:       m.AccountID,
		AccountName:     m.AccountName,
		MovementType:    domain.MovementType(m.MovementType),
		Amount:          m.Amount,
		Description:     m.Description,
		ReferenceNumber: derefString(m.ReferenceNumber),
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		Status:          domain.MovementStatus(m.Status),
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to a slice of domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}
