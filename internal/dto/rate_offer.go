package dto

import (
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRateOfferRequest defines the data needed to place a rate offer.
// TotalAmount is computed server-side from the request amount and the rate.
type CreateRateOfferRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// AcceptOfferRequest defines the body for accepting an offer.
type AcceptOfferRequest struct {
	TermsAccepted bool `json:"termsAccepted" binding:"required"`
}

// RateOfferResponse defines the data returned for a rate offer.
type RateOfferResponse struct {
	RateOfferID       string                 `json:"rateOfferID"`
	ExchangeRequestID string                 `json:"exchangeRequestID"`
	BidderID          string                 `json:"bidderID"`
	Rate              decimal.Decimal        `json:"rate"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"`
	Status            domain.RateOfferStatus `json:"status"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// SettlementResponse defines the combined response returned after accepting an offer.
type SettlementResponse struct {
	Request      ExchangeRequestResponse `json:"request"`
	Offer        RateOfferResponse       `json:"offer"`
	Transactions []TransactionResponse   `json:"transactions"`
}

// ToRateOfferResponse converts a domain.RateOffer to its response DTO.
func ToRateOfferResponse(o *domain.RateOffer) RateOfferResponse {
	return RateOfferResponse{
		RateOfferID:       o.RateOfferID,
		ExchangeRequestID: o.ExchangeRequestID,
		BidderID:          o.BidderID,
		Rate:              o.Rate,
		TotalAmount:       o.TotalAmount,
		Status:            o.Status,
		CreatedAt:         o.CreatedAt,
	}
}

// ToListRateOfferResponse converts domain offers to response DTOs.
func ToListRateOfferResponse(offers []domain.RateOffer) []RateOfferResponse {
	res := make([]RateOfferResponse, len(offers))
	for i, o := range offers {
		res[i] = ToRateOfferResponse(&o)
	}
	return res
}
