package domain

import "github.com/shopspring/decimal"

// RateOfferStatus indicates the lifecycle state of a rate offer.
type RateOfferStatus string

const (
	OfferPending  RateOfferStatus = "PENDING"
	OfferAccepted RateOfferStatus = "ACCEPTED"
	OfferRejected RateOfferStatus = "REJECTED"
)

// RateOffer is a bidder's proposed conversion rate against one exchange request.
// Many offers reference one request; when one is accepted all siblings become REJECTED
// in the same unit of work.
type RateOffer struct {
	RateOfferID       string          `json:"rateOfferID"`       // Primary Key (e.g., UUID)
	ExchangeRequestID string          `json:"exchangeRequestID"` // FK -> exchange_requests
	BidderID          string          `json:"bidderID"`          // FK -> users.user_id
	Rate              decimal.Decimal `json:"rate"`              // ToCurrency per unit of FromCurrency
	TotalAmount       decimal.Decimal `json:"totalAmount"`       // Amount * Rate, in ToCurrency
	Status            RateOfferStatus `json:"status"`
	AuditFields
}
