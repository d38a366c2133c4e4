package repositories

import (
	"context"
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRequestReader defines read operations for exchange requests
type ExchangeRequestReader interface {
	// FindRequestByID retrieves a specific exchange request by its ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ExchangeRequest, error)

	// ListRequests retrieves a paginated list of requests, optionally filtered by status,
	// using token-based pagination. Returns the requests and a token for the next page.
	ListRequests(ctx context.Context, status *domain.ExchangeRequestStatus, limit int, nextToken *string) ([]domain.ExchangeRequest, *string, error)

	// ListRequestsByRequester retrieves a paginated list of one user's requests.
	ListRequestsByRequester(ctx context.Context, requesterID string, limit int, nextToken *string) ([]domain.ExchangeRequest, *string, error)
}

// ExchangeRequestWriter defines write operations for exchange requests
type ExchangeRequestWriter interface {
	// SaveRequest persists a new exchange request.
	SaveRequest(ctx context.Context, request domain.ExchangeRequest) error

	// CancelRequest moves an ACTIVE request to CANCELLED and rejects its pending offers.
	// Fails with ErrConflict if the request is no longer ACTIVE.
	CancelRequest(ctx context.Context, requestID string, actorID string, now time.Time) error
}

// RateOfferReader defines read operations for rate offers
type RateOfferReader interface {
	// FindOfferByID retrieves a specific rate offer by its ID.
	FindOfferByID(ctx context.Context, offerID string) (*domain.RateOffer, error)

	// FindOffersByRequestID retrieves all offers placed against a request, newest first.
	FindOffersByRequestID(ctx context.Context, requestID string) ([]domain.RateOffer, error)
}

// RateOfferWriter defines write operations for rate offers
type RateOfferWriter interface {
	// SaveOffer persists a new rate offer.
	SaveOffer(ctx context.Context, offer domain.RateOffer) error
}

// SettlementWriter persists the accept-offer unit of work: claim the request, accept
// the chosen offer, reject its siblings, apply the balance deltas, and append the
// ledger entries, all inside one database transaction.
type SettlementWriter interface {
	// SettleOffer performs the atomic settlement. balanceChanges holds the net per
	// (user, currency) deltas; entries are the ledger rows to append (running balance
	// is computed against the locked rows inside the transaction).
	// Fails with ErrConflict if the request is not ACTIVE or the offer not PENDING,
	// and with ErrInsufficientFunds if any balance would go negative.
	SettleOffer(ctx context.Context, requestID string, offerID string, entries []domain.Transaction, balanceChanges map[domain.BalanceKey]decimal.Decimal, actorID string, now time.Time) error
}

// ExchangeRepositoryFacade combines all exchange-related repository interfaces
type ExchangeRepositoryFacade interface {
	ExchangeRequestReader
	ExchangeRequestWriter
	RateOfferReader
	RateOfferWriter
	SettlementWriter
}
