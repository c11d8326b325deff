package domain

// Group is a uniquely named bucket that accounts may optionally belong to.
// Groups are hard-deleted and only when no active account references them.
type Group struct {
	GroupID string `json:"groupID"`
	Name    string `json:"name"`
	AuditFields
}
