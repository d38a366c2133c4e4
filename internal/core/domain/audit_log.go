package domain

import "time"

// AuditAction names an auditable state change.
type AuditAction string

const (
	AuditRequestCreated   AuditAction = "REQUEST_CREATED"
	AuditRequestCancelled AuditAction = "REQUEST_CANCELLED"
	AuditOfferPlaced      AuditAction = "OFFER_PLACED"
	AuditOfferAccepted    AuditAction = "OFFER_ACCEPTED"
	AuditFundsDeposited   AuditAction = "FUNDS_DEPOSITED"
)

// AuditLog is an append-only record of who did what to which entity.
type AuditLog struct {
	AuditID    string      `json:"auditID"`    // Primary Key (e.g., UUID)
	ActorID    string      `json:"actorID"`    // FK -> users.user_id
	Action     AuditAction `json:"action"`
	EntityType string      `json:"entityType"` // e.g. "exchange_request"
	EntityID   string      `json:"entityID"`
	Details    string      `json:"details"` // Free-form JSON blob
	CreatedAt  time.Time   `json:"createdAt"`
}
