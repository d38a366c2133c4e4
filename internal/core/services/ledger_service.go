package services

import (
	"context"
	"fmt"

	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	exchangeRepo    portsrepo.ExchangeRepositoryFacade
}

// NewLedgerService creates the read-side service over the transactions ledger.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade, exchangeRepo portsrepo.ExchangeRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{transactionRepo: transactionRepo, exchangeRepo: exchangeRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListUserTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	transactions, nextToken, err := s.transactionRepo.ListTransactionsByUserID(ctx, userID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// GetRequestTransactions returns the ledger entries of one settlement, restricted
// to the two settlement parties.
func (s *ledgerService) GetRequestTransactions(ctx context.Context, requestID string, requestingUserID string) ([]domain.Transaction, error) {
	request, err := s.exchangeRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, err)
	}

	allowed := request.RequesterID == requestingUserID
	if !allowed && request.SelectedOfferID != nil {
		offer, err := s.exchangeRepo.FindOfferByID(ctx, *request.SelectedOfferID)
		if err != nil {
			return nil, fmt.Errorf("failed to get selected offer for request %s: %w", requestID, err)
		}
		allowed = offer.BidderID == requestingUserID
	}
	if !allowed {
		return nil, fmt.Errorf("%w: only settlement parties may view the ledger entries", apperrors.ErrForbidden)
	}

	transactions, err := s.transactionRepo.FindTransactionsByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for request %s: %w", requestID, err)
	}
	return transactions, nil
}
