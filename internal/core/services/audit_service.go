package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewAuditService creates the append-only audit log service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo, userRepo: userRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, actorID string, action domain.AuditAction, entityType, entityID, details string) error {
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *auditService) ListAuditLogs(ctx context.Context, requestingUserID string, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requesting user %s: %w", requestingUserID, err)
	}
	if !requester.Role.Can(domain.CapViewAuditLog) {
		return nil, fmt.Errorf("%w: viewing the audit log requires admin role", apperrors.ErrForbidden)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, nextToken, err := s.auditRepo.ListAuditLogs(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return &dto.ListAuditLogsResponse{
		Entries:   dto.ToListAuditLogResponse(entries),
		NextToken: nextToken,
	}, nil
}
