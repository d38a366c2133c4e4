package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo, userRepo: userRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator %s: %w", creatorUserID, err)
	}
	if !creator.Role.Can(domain.CapManageCurrencies) {
		return nil, fmt.Errorf("%w: managing currencies requires admin role", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency %s: %w", req.CurrencyCode, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("currency created", "currencyCode", req.CurrencyCode)
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.FindCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

type balanceService struct {
	balanceRepo  portsrepo.BalanceRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	audit        portssvc.AuditSvcFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, audit portssvc.AuditSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo, currencyRepo: currencyRepo, audit: audit}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetBalances(ctx context.Context, userID string) ([]domain.Balance, error) {
	balances, err := s.balanceRepo.FindBalancesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances for user %s: %w", userID, err)
	}
	return balances, nil
}

func (s *balanceService) GetBalance(ctx context.Context, userID, currencyCode string) (*domain.Balance, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, currencyCode)
	}

	balance, err := s.balanceRepo.FindBalance(ctx, userID, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			now := time.Now().UTC()
			return &domain.Balance{
				UserID:       userID,
				CurrencyCode: currencyCode,
				Amount:       decimal.Zero,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}, nil
		}
		return nil, fmt.Errorf("failed to get balance (%s, %s): %w", userID, currencyCode, err)
	}
	return balance, nil
}

// DepositFunds credits a user's balance outside settlement. Deposits are recorded
// in the audit log, not the transactions ledger, which only holds settlement legs.
func (s *balanceService) DepositFunds(ctx context.Context, userID string, req dto.DepositFundsRequest) (*domain.Balance, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
	}

	balance, err := s.balanceRepo.CreditBalance(ctx, userID, req.CurrencyCode, req.Amount, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit funds for user %s: %w", userID, err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	details := fmt.Sprintf(`{"currencyCode":%q,"amount":%q}`, req.CurrencyCode, req.Amount.String())
	if err := s.audit.Record(ctx, userID, domain.AuditFundsDeposited, "balance", userID, details); err != nil {
		logger.Error("failed to record deposit audit entry", "error", err)
	}

	logger.Info("funds deposited", "userID", userID, "currencyCode", req.CurrencyCode)
	return balance, nil
}
