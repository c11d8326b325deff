package domain

import "time"

// SettingType determines how a setting's textual value is interpreted.
type SettingType string

const (
	SettingString  SettingType = "string"
	SettingNumber  SettingType = "number"
	SettingBoolean SettingType = "boolean"
	SettingJSON    SettingType = "json"
)

// IsValid reports whether t is one of the known setting types.
func (t SettingType) IsValid() bool {
	switch t {
	case SettingString, SettingNumber, SettingBoolean, SettingJSON:
		return true
	}
	return false
}

// Setting is a named, typed configuration value stored as text.
type Setting struct {
	Name        string      `json:"name"`
	Value       string      `json:"value"`
	SettingType SettingType `json:"settingType"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// BulkSettingResult reports the outcome of one item of a bulk write.
type BulkSettingResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
