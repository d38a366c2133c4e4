package dto

import (
	"time"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID     string                 `json:"transactionID"`
	UserID            string                 `json:"userID"`
	ExchangeRequestID string                 `json:"exchangeRequestID"`
	RateOfferID       string                 `json:"rateOfferID"`
	CurrencyCode      string                 `json:"currencyCode"`
	Amount            decimal.Decimal        `json:"amount"`
	Type              domain.TransactionType `json:"type"`
	RunningBalance    decimal.Decimal        `json:"runningBalance"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ListTransactionsParams holds query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,gt=0,lte=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		UserID:            txn.UserID,
		ExchangeRequestID: txn.ExchangeRequestID,
		RateOfferID:       txn.RateOfferID,
		CurrencyCode:      txn.CurrencyCode,
		Amount:            txn.Amount,
		Type:              txn.TransactionType,
		RunningBalance:    txn.RunningBalance,
		CreatedAt:         txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
