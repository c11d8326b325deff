package models

// Group represents a row of the account_groups table.
type Group struct {
	GroupID string `db:"group_id"`
	Name    string `db:"name"`
	AuditFields
}
