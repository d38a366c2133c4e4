package domain

// ChatMessage is a message in the per-request negotiation feed.
type ChatMessage struct {
	MessageID         string `json:"messageID"`         // Primary Key (e.g., UUID)
	ExchangeRequestID string `json:"exchangeRequestID"` // FK -> exchange_requests
	SenderID          string `json:"senderID"`          // FK -> users.user_id
	Body              string `json:"body"`
	AuditFields
}
