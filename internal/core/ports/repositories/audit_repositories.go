package repositories

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
)

// AuditWriter defines write operations for the append-only audit log
type AuditWriter interface {
	// SaveAuditLog persists a new audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditReader defines read operations for the audit log
type AuditReader interface {
	// ListAuditLogs retrieves a paginated list of audit entries, newest first.
	ListAuditLogs(ctx context.Context, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditRepositoryFacade combines audit repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
