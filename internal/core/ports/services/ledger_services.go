package services

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

// LedgerSvcFacade defines read operations over the append-only transaction ledger.
type LedgerSvcFacade interface {
	// ListUserTransactions retrieves a paginated list of the user's ledger entries.
	ListUserTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetRequestTransactions retrieves the ledger entries of one settlement.
	// Restricted to the two settlement parties.
	GetRequestTransactions(ctx context.Context, requestID string, requestingUserID string) ([]domain.Transaction, error)
}
