package mapping

import (
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/models"
)

// ToModelChatMessage converts a domain ChatMessage to its model.
func ToModelChatMessage(d domain.ChatMessage) models.ChatMessage {
	return models.ChatMessage{
		MessageID:         d.MessageID,
		ExchangeRequestID: d.ExchangeRequestID,
		SenderID:          d.SenderID,
		Body:              d.Body,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChatMessage converts a model ChatMessage to its domain form.
func ToDomainChatMessage(m models.ChatMessage) domain.ChatMessage {
	return domain.ChatMessage{
		MessageID:         m.MessageID,
		ExchangeRequestID: m.ExchangeRequestID,
		SenderID:          m.SenderID,
		Body:              m.Body,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChatMessageSlice converts model messages to domain messages.
func ToDomainChatMessageSlice(ms []models.ChatMessage) []domain.ChatMessage {
	ds := make([]domain.ChatMessage, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChatMessage(m)
	}
	return ds
}

// ToModelAuditLog converts a domain AuditLog to its model.
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:    d.AuditID,
		ActorID:    d.ActorID,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Details:    d.Details,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to its domain form.
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:    m.AuditID,
		ActorID:    m.ActorID,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    m.Details,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts model audit logs to domain audit logs.
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	ds := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}
