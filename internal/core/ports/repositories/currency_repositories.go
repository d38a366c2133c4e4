package repositories

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyReader defines read operations for currency reference data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindCurrencies retrieves all supported currencies.
	FindCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency reference data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// BalanceReader defines read operations for per-currency balances
type BalanceReader interface {
	// FindBalancesByUserID retrieves all balance rows for a user.
	FindBalancesByUserID(ctx context.Context, userID string) ([]domain.Balance, error)

	// FindBalance retrieves a single (user, currency) balance row.
	FindBalance(ctx context.Context, userID, currencyCode string) (*domain.Balance, error)
}

// BalanceWriter defines write operations for per-currency balances outside settlement.
// Settlement balance movement goes through SettlementWriter instead.
type BalanceWriter interface {
	// CreditBalance adds funds to a (user, currency) balance, creating the row if absent.
	CreditBalance(ctx context.Context, userID, currencyCode string, amount decimal.Decimal, actorID string) (*domain.Balance, error)
}

// BalanceRepositoryFacade combines balance repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
