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
	"github.com/peerfx/peerfx_backend/internal/middleware"
)

type chatService struct {
	chatRepo     portsrepo.ChatRepositoryFacade
	exchangeRepo portsrepo.ExchangeRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	notifier     portssvc.Notifier
}

// NewChatService creates the per-request negotiation feed service.
func NewChatService(chatRepo portsrepo.ChatRepositoryFacade, exchangeRepo portsrepo.ExchangeRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, notifier portssvc.Notifier) portssvc.ChatSvcFacade {
	return &chatService{chatRepo: chatRepo, exchangeRepo: exchangeRepo, userRepo: userRepo, notifier: notifier}
}

var _ portssvc.ChatSvcFacade = (*chatService)(nil)

func (s *chatService) PostMessage(ctx context.Context, requestID string, req dto.CreateChatMessageRequest, senderID string) (*domain.ChatMessage, error) {
	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}

	sender, err := s.userRepo.FindUserByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender %s: %w", senderID, err)
	}
	if !sender.Role.Can(domain.CapChat) {
		return nil, fmt.Errorf("%w: chat is not permitted for this role", apperrors.ErrForbidden)
	}
	if err := s.requireParticipant(ctx, request, senderID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	message := domain.ChatMessage{
		MessageID:         uuid.NewString(),
		ExchangeRequestID: requestID,
		SenderID:          senderID,
		Body:              req.Body,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     senderID,
			LastUpdatedAt: now,
			LastUpdatedBy: senderID,
		},
	}

	if err := s.chatRepo.SaveMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	s.notifier.Publish(portssvc.Event{Type: "refresh", Entity: "chat_message", EntityID: requestID})
	middleware.GetLoggerFromCtx(ctx).Info("chat message posted", "requestID", requestID, "messageID", message.MessageID)
	return &message, nil
}

func (s *chatService) ListMessages(ctx context.Context, requestID string, params dto.ListChatMessagesParams, callerID string) (*dto.ListChatMessagesResponse, error) {
	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}
	if err := s.requireParticipant(ctx, request, callerID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	messages, nextToken, err := s.chatRepo.ListMessagesByRequestID(ctx, requestID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages for request %s: %w", requestID, err)
	}

	return &dto.ListChatMessagesResponse{
		Messages:  dto.ToListChatMessageResponse(messages),
		NextToken: nextToken,
	}, nil
}

// requireParticipant restricts the feed to the request's parties: the requester
// and anyone who has placed an offer on it.
func (s *chatService) requireParticipant(ctx context.Context, request *domain.ExchangeRequest, userID string) error {
	if request.RequesterID == userID {
		return nil
	}

	offers, err := s.exchangeRepo.FindOffersByRequestID(ctx, request.ExchangeRequestID)
	if err != nil {
		return fmt.Errorf("failed to list offers for request %s: %w", request.ExchangeRequestID, err)
	}
	for _, offer := range offers {
		if offer.BidderID == userID {
			return nil
		}
	}

	return fmt.Errorf("%w: only participants of request %s may use its feed", apperrors.ErrForbidden, request.ExchangeRequestID)
}
