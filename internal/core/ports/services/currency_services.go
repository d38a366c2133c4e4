package services

import (
	"context"

	"github.com/peerfx/peerfx_backend/internal/core/domain"
	"github.com/peerfx/peerfx_backend/internal/dto"
)

// CurrencySvcFacade defines operations on the currency reference data.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new supported currency. Requires CapManageCurrencies.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// BalanceSvcFacade defines operations on per-currency balances outside settlement.
type BalanceSvcFacade interface {
	// GetBalances retrieves all balances of a user.
	GetBalances(ctx context.Context, userID string) ([]domain.Balance, error)

	// GetBalance retrieves a user's balance in one currency. A user who has
	// never held the currency gets a zero balance, not an error.
	GetBalance(ctx context.Context, userID, currencyCode string) (*domain.Balance, error)

	// DepositFunds credits a user's balance in one currency.
	DepositFunds(ctx context.Context, userID string, req dto.DepositFundsRequest) (*domain.Balance, error)
}
