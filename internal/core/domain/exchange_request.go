package domain

import "github.com/shopspring/decimal"

// ExchangeRequestStatus indicates the lifecycle state of an exchange request.
type ExchangeRequestStatus string

const (
	RequestActive    ExchangeRequestStatus = "ACTIVE"
	RequestCompleted ExchangeRequestStatus = "COMPLETED"
	RequestCancelled ExchangeRequestStatus = "CANCELLED"
)

// RequestPriority is the requester-declared urgency of the exchange.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "LOW"
	PriorityNormal RequestPriority = "NORMAL"
	PriorityHigh   RequestPriority = "HIGH"
)

// ExchangeRequest is a posted intent to convert Amount of FromCurrency into ToCurrency.
// The requester owns the request; the transition to COMPLETED happens exactly once,
// on offer acceptance, and is owned by the service rather than any single caller.
type ExchangeRequest struct {
	ExchangeRequestID string                `json:"exchangeRequestID"` // Primary Key (e.g., UUID)
	RequesterID       string                `json:"requesterID"`       // FK -> users.user_id
	FromCurrencyCode  string                `json:"fromCurrencyCode"`  // FK -> currencies.currency_code
	ToCurrencyCode    string                `json:"toCurrencyCode"`    // FK -> currencies.currency_code
	Amount            decimal.Decimal       `json:"amount"`            // Amount of FromCurrency on offer
	DesiredRate       *decimal.Decimal      `json:"desiredRate,omitempty"`
	Priority          RequestPriority       `json:"priority"`
	Status            ExchangeRequestStatus `json:"status"`
	SelectedOfferID   *string               `json:"selectedOfferID,omitempty"` // Set when COMPLETED
	AuditFields
}

// IsTerminal reports whether the request can no longer change state.
func (s ExchangeRequestStatus) IsTerminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}
