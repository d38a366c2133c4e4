package dto

import (
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit entry.
type AuditLogResponse struct {
	AuditID    string             `json:"auditID"`
	ActorID    string             `json:"actorID"`
	Action     domain.AuditAction `json:"action"`
	EntityType string             `json:"entityType"`
	EntityID   string             `json:"entityID"`
	Details    string             `json:"details"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ListAuditLogsParams holds query parameters for listing audit entries.
type ListAuditLogsParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,gt=0,lte=200"`
	NextToken *string `form:"nextToken"`
}

// ListAuditLogsResponse wraps a page of audit entries.
type ListAuditLogsResponse struct {
	Entries   []AuditLogResponse `json:"entries"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToAuditLogResponse converts a domain.AuditLog to its response DTO.
func ToAuditLogResponse(a *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditID:    a.AuditID,
		ActorID:    a.ActorID,
		Action:     a.Action,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
	}
}

// ToListAuditLogResponse converts domain audit entries to response DTOs.
func ToListAuditLogResponse(entries []domain.AuditLog) []AuditLogResponse {
	res := make([]AuditLogResponse, len(entries))
	for i, a := range entries {
		res[i] = ToAuditLogResponse(&a)
	}
	return res
}
