package models

import "time"

// AuditLog represents a row in the audit_logs table. Append-only.
type AuditLog struct {
	AuditID    string    `json:"auditID" db:"audit_id"`
	ActorID    string    `json:"actorID" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entityType" db:"entity_type"`
	EntityID   string    `json:"entityID" db:"entity_id"`
	Details    string    `json:"details" db:"details"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
