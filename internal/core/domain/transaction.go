package domain

import "github.com/shopspring/decimal"

// TransactionType indicates whether a ledger entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is one append-only ledger entry produced by a settlement. Each settlement
// writes a debit and a credit per currency leg, all referencing the request and the
// accepted offer. Rows are never mutated after creation.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`     // Primary Key (e.g., UUID)
	UserID            string          `json:"userID"`            // FK -> users.user_id
	ExchangeRequestID string          `json:"exchangeRequestID"` // FK -> exchange_requests
	RateOfferID       string          `json:"rateOfferID"`       // FK -> rate_offers
	CurrencyCode      string          `json:"currencyCode"`      // FK -> currencies.currency_code
	Amount            decimal.Decimal `json:"amount"`            // Positive value
	TransactionType   TransactionType `json:"transactionType"`   // DEBIT or CREDIT
	TermsAccepted     bool            `json:"termsAccepted"`
	RunningBalance    decimal.Decimal `json:"runningBalance"` // Balance of (user, currency) after this entry
	AuditFields
}

// SignedAmount returns the balance delta this entry applies: credits add, debits subtract.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}
