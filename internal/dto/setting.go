package dto

import "github.com/SscSPs/cari_ledger/internal/core/domain"

// SettingRequest defines the data needed to write a setting.
type SettingRequest struct {
	Name        string             `json:"name" validate:"required,max=100"`
	Value       string             `json:"value"`
	SettingType domain.SettingType `json:"settingType" validate:"omitempty,oneof=string number boolean json"`
	Category    string             `json:"category" validate:"max=50"`
	Description string             `json:"description" validate:"max=500"`
}

// BulkSettingsRequest wraps several settings written in one call.
type BulkSettingsRequest struct {
	Settings []SettingRequest `json:"settings" binding:"required,min=1"`
}

// InitializeDefaultsResponse reports how many default settings were inserted.
type InitializeDefaultsResponse struct {
	Inserted int `json:"inserted"`
}
