package services

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

// ChatSvcFacade defines the per-request negotiation feed operations. Both are
// restricted to the request's participants: the requester and its bidders.
type ChatSvcFacade interface {
	// PostMessage appends a message to a request's feed.
	PostMessage(ctx context.Context, requestID string, req dto.CreateChatMessageRequest, senderID string) (*domain.ChatMessage, error)

	// ListMessages retrieves a paginated page of a request's feed, oldest first.
	ListMessages(ctx context.Context, requestID string, params dto.ListChatMessagesParams, callerID string) (*dto.ListChatMessagesResponse, error)
}
