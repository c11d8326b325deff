package mapping

import (
	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/models"
)

// ToModelSetting converts a domain Setting to a model Setting
func ToModelSetting(d domain.Setting) models.Setting {
	return models.Setting{
		Name:        d.Name,
		Value:       d.Value,
		SettingType: string(d.SettingType),
		Category:    d.Category,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		Name:        m.Name,
		Value:       m.Value,
		SettingType: domain.SettingType(m.SettingType),
		Category:    m.Category,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainSettingSlice converts a slice of model Settings to a slice of domain Settings
func ToDomainSettingSlice(ms []models.Setting) []domain.Setting {
	ds := make([]domain.Setting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSetting(m)
	}
	return ds
}
