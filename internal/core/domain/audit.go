package domain

import "time"

// AuditRecord is one fire-and-forget audit trail entry.
type AuditRecord struct {
	AuditID     string    `json:"auditID"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityID"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	User        string    `json:"user"`
	LoggedAt    time.Time `json:"loggedAt"`
}
