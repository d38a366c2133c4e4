package repositories

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
)

// TransactionReader defines read operations for the append-only ledger
type TransactionReader interface {
	// FindTransactionsByRequestID retrieves all ledger entries of one settlement.
	FindTransactionsByRequestID(ctx context.Context, requestID string) ([]domain.Transaction, error)

	// ListTransactionsByUserID retrieves a paginated list of a user's ledger entries
	// using token-based pagination.
	ListTransactionsByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionRepositoryFacade combines ledger repository interfaces.
// The ledger has no writer facade of its own: rows are only appended by SettlementWriter.
type TransactionRepositoryFacade interface {
	TransactionReader
}
