package dto

import (
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
)

// CreateChatMessageRequest defines the body for posting a message to a request feed.
type CreateChatMessageRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// ChatMessageResponse defines the data returned for a chat message.
type ChatMessageResponse struct {
	MessageID         string    `json:"messageID"`
	ExchangeRequestID string    `json:"exchangeRequestID"`
	SenderID          string    `json:"senderID"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ListChatMessagesParams holds query parameters for listing chat messages.
type ListChatMessagesParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,gt=0,lte=200"`
	NextToken *string `form:"nextToken"`
}

// ListChatMessagesResponse wraps a page of chat messages.
type ListChatMessagesResponse struct {
	Messages  []ChatMessageResponse `json:"messages"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToChatMessageResponse converts a domain.ChatMessage to its response DTO.
func ToChatMessageResponse(m *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		MessageID:         m.MessageID,
		ExchangeRequestID: m.ExchangeRequestID,
		SenderID:          m.SenderID,
		Body:              m.Body,
		CreatedAt:         m.CreatedAt,
	}
}

// ToListChatMessageResponse converts domain messages to response DTOs.
func ToListChatMessageResponse(messages []domain.ChatMessage) []ChatMessageResponse {
	res := make([]ChatMessageResponse, len(messages))
	for i, m := range messages {
		res[i] = ToChatMessageResponse(&m)
	}
	return res
}
