package models

import "github.com/shopspring/decimal"

// ExchangeRequest represents a row in the exchange_requests table.
type ExchangeRequest struct {
	ExchangeRequestID string           `json:"exchangeRequestID" db:"exchange_request_id"`
	RequesterID       string           `json:"requesterID" db:"requester_id"`
	FromCurrencyCode  string           `json:"fromCurrencyCode" db:"from_currency_code"`
	ToCurrencyCode    string           `json:"toCurrencyCode" db:"to_currency_code"`
	Amount            decimal.Decimal  `json:"amount" db:"amount"`
	DesiredRate       *decimal.Decimal `json:"desiredRate,omitempty" db:"desired_rate"`
	Priority          string           `json:"priority" db:"priority"`
	Status            string           `json:"status" db:"status"`
	SelectedOfferID   *string          `json:"selectedOfferID,omitempty" db:"selected_offer_id"`
	AuditFields
}
