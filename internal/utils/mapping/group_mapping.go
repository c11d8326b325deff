package mapping

import (
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:     d.GroupID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGroupSlice converts a slice of model Groups to a slice of domain Groups
func ToDomainGroupSlice(ms []models.Group) []domain.Group {
	ds := make([]domain.Group, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroup(m)
	}
	return ds
}
