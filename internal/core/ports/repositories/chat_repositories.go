package repositories

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
)

// ChatReader defines read operations for the per-request message feed
type ChatReader interface {
	// ListMessagesByRequestID retrieves a paginated list of messages for a request,
	// oldest first, using token-based pagination.
	ListMessagesByRequestID(ctx context.Context, requestID string, limit int, nextToken *string) ([]domain.ChatMessage, *string, error)
}

// ChatWriter defines write operations for the per-request message feed
type ChatWriter interface {
	// SaveMessage persists a new chat message.
	SaveMessage(ctx context.Context, message domain.ChatMessage) error
}

// ChatRepositoryFacade combines chat repository interfaces
type ChatRepositoryFacade interface {
	ChatReader
	ChatWriter
}
