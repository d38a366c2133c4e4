package services

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

// AuditSvcFacade defines operations over the append-only audit log.
type AuditSvcFacade interface {
	// Record appends an audit entry. Failures are logged by callers, never fatal.
	Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID, details string) error

	// ListAuditLogs retrieves a paginated list of audit entries. Requires CapViewAuditLog.
	ListAuditLogs(ctx context.Context, requestingUserID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}
