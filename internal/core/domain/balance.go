package domain

import "github.com/shopspring/decimal"

// Balance is a user's holding in one currency. One row per (user, currency).
// Invariant: Amount never goes negative; settlements that would breach this fail whole.
type Balance struct {
	UserID       string          `json:"userID"`       // FK -> users.user_id
	CurrencyCode string          `json:"currencyCode"` // FK -> currencies.currency_code
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}

// BalanceKey identifies one balance row when computing settlement deltas.
type BalanceKey struct {
	UserID       string
	CurrencyCode string
}
