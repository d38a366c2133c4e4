package models

// ChatMessage represents a row in the chat_messages table.
type ChatMessage struct {
	MessageID         string `json:"messageID" db:"message_id"`
	ExchangeRequestID string `json:"exchangeRequestID" db:"exchange_request_id"`
	SenderID          string `json:"senderID" db:"sender_id"`
	Body              string `json:"body" db:"body"`
	AuditFields
}
