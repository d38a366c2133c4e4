package models

import "github.com/shopspring/decimal"

// RateOffer represents a row in the rate_offers table.
type RateOffer struct {
	RateOfferID       string          `json:"rateOfferID" db:"rate_offer_id"`
	ExchangeRequestID string          `json:"exchangeRequestID" db:"exchange_request_id"`
	BidderID          string          `json:"bidderID" db:"bidder_id"`
	Rate              decimal.Decimal `json:"rate" db:"rate"`
	TotalAmount       decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status            string          `json:"status" db:"status"`
	AuditFields
}
