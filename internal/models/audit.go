package models

import "time"

// AuditLog is one row of the append-only audit trail.
type AuditLog struct {
	AuditID     string    `json:"auditID"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityID"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	UserID      string    `json:"userID"`
	LoggedAt    time.Time `json:"loggedAt"`
}
