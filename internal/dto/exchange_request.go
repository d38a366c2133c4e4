package dto

import (
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRequestRequest defines the data needed to post an exchange request.
type CreateExchangeRequestRequest struct {
	FromCurrencyCode string                 `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string                 `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Amount           decimal.Decimal        `json:"amount" binding:"required"`
	DesiredRate      *decimal.Decimal       `json:"desiredRate"` // Optional indicative rate
	Priority         domain.RequestPriority `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH"`
}

// ExchangeRequestResponse defines the data returned for an exchange request.
type ExchangeRequestResponse struct {
	ExchangeRequestID string                       `json:"exchangeRequestID"`
	RequesterID       string                       `json:"requesterID"`
	FromCurrencyCode  string                       `json:"fromCurrencyCode"`
	ToCurrencyCode    string                       `json:"toCurrencyCode"`
	Amount            decimal.Decimal              `json:"amount"`
	DesiredRate       *decimal.Decimal             `json:"desiredRate,omitempty"`
	Priority          domain.RequestPriority       `json:"priority"`
	Status            domain.ExchangeRequestStatus `json:"status"`
	SelectedOfferID   *string                      `json:"selectedOfferID,omitempty"`
	CreatedAt         time.Time                    `json:"createdAt"`
	LastUpdatedAt     time.Time                    `json:"lastUpdatedAt"`
}

// ListExchangeRequestsParams holds query parameters for listing exchange requests.
type ListExchangeRequestsParams struct {
	Status    *domain.ExchangeRequestStatus `form:"status" binding:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
	Limit     int                           `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	NextToken *string                       `form:"nextToken"`
}

// ListExchangeRequestsResponse wraps a page of exchange requests.
type ListExchangeRequestsResponse struct {
	Requests  []ExchangeRequestResponse `json:"requests"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToExchangeRequestResponse converts a domain.ExchangeRequest to its response DTO.
func ToExchangeRequestResponse(r *domain.ExchangeRequest) ExchangeRequestResponse {
	return ExchangeRequestResponse{
		ExchangeRequestID: r.ExchangeRequestID,
		RequesterID:       r.RequesterID,
		FromCurrencyCode:  r.FromCurrencyCode,
		ToCurrencyCode:    r.ToCurrencyCode,
		Amount:            r.Amount,
		DesiredRate:       r.DesiredRate,
		Priority:          r.Priority,
		Status:            r.Status,
		SelectedOfferID:   r.SelectedOfferID,
		CreatedAt:         r.CreatedAt,
		LastUpdatedAt:     r.LastUpdatedAt,
	}
}

// ToListExchangeRequestResponse converts domain requests to response DTOs.
func ToListExchangeRequestResponse(requests []domain.ExchangeRequest) []ExchangeRequestResponse {
	res := make([]ExchangeRequestResponse, len(requests))
	for i, r := range requests {
		res[i] = ToExchangeRequestResponse(&r)
	}
	return res
}
