package services

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

// ExchangeRequestSvc defines operations on exchange requests.
type ExchangeRequestSvc interface {
	// CreateExchangeRequest validates and posts a new ACTIVE exchange request.
	CreateExchangeRequest(ctx context.Context, req dto.CreateExchangeRequestRequest, requesterID string) (*domain.ExchangeRequest, error)

	// GetExchangeRequest retrieves a request by ID.
	GetExchangeRequest(ctx context.Context, requestID string) (*domain.ExchangeRequest, error)

	// ListExchangeRequests retrieves a paginated page of the marketplace feed.
	ListExchangeRequests(ctx context.Context, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error)

	// ListUserExchangeRequests retrieves a paginated page of one user's own requests.
	ListUserExchangeRequests(ctx context.Context, requesterID string, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error)

	// CancelExchangeRequest cancels an ACTIVE request. Owner only.
	CancelExchangeRequest(ctx context.Context, requestID string, actorID string) error
}

// RateOfferSvc defines operations on rate offers.
type RateOfferSvc interface {
	// CreateRateOffer places a competing offer against an ACTIVE request.
	// Self-bidding is rejected.
	CreateRateOffer(ctx context.Context, requestID string, req dto.CreateRateOfferRequest, bidderID string) (*domain.RateOffer, error)

	// ListOffersForRequest retrieves all offers against a request, newest first.
	ListOffersForRequest(ctx context.Context, requestID string) ([]domain.RateOffer, error)
}

// SettlementSvc defines the accept-offer operation.
type SettlementSvc interface {
	// AcceptOffer settles a request against one of its pending offers. Only the
	// request owner may accept; the whole effect is atomic and at most one of any
	// concurrent calls on the same request succeeds.
	AcceptOffer(ctx context.Context, requestID string, offerID string, acceptingUserID string, termsAccepted bool) (*dto.SettlementResponse, error)
}

// ExchangeSvcFacade combines all marketplace service interfaces.
type ExchangeSvcFacade interface {
	ExchangeRequestSvc
	RateOfferSvc
	SettlementSvc
}
