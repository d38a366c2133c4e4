package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a ledger entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a row in the transactions ledger table. Append-only.
type Transaction struct {
	TransactionID     string          `json:"transactionID" db:"transaction_id"`
	UserID            string          `json:"userID" db:"user_id"`
	ExchangeRequestID string          `json:"exchangeRequestID" db:"exchange_request_id"`
	RateOfferID       string          `json:"rateOfferID" db:"rate_offer_id"`
	CurrencyCode      string          `json:"currencyCode" db:"currency_code"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	TransactionType   TransactionType `json:"transactionType" db:"transaction_type"`
	TermsAccepted     bool            `json:"termsAccepted" db:"terms_accepted"`
	RunningBalance    decimal.Decimal `json:"runningBalance" db:"running_balance"`
	AuditFields
}
