package models

// Currency represents a row in the currencies table.
type Currency struct {
	CurrencyCode string `json:"currencyCode" db:"currency_code"`
	Symbol       string `json:"symbol" db:"symbol"`
	Name         string `json:"name" db:"name"`
	Precision    int16  `json:"precision" db:"precision"`
	AuditFields
}
