package models

import "github.com/shopspring/decimal"

// Balance represents a row in the balances table; one per (user, currency).
// The amount column carries a CHECK (amount >= 0) constraint as a last line of defence.
type Balance struct {
	UserID       string          `json:"userID" db:"user_id"`
	CurrencyCode string          `json:"currencyCode" db:"currency_code"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	AuditFields
}
