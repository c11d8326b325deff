package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy/LastUpdatedBy carry the authenticated user ID, or "system" when auth is disabled.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemUserID is recorded in audit fields when no authenticated user is present.
const SystemUserID = "system"
