package models

import "time"

// Setting represents a row of the settings table.
type Setting struct {
	Name        string    `db:"name"`
	Value       string    `db:"value"`
	SettingType string    `db:"setting_type"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
