package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/core/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindBalancesByUserID(ctx context.Context, userID string) ([]domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, userID, currencyCode string) (*domain.Balance, error) {
	args := m.Called(ctx, userID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) CreditBalance(ctx context.Context, userID, currencyCode string, amount decimal.Decimal, actorID string) (*domain.Balance, error) {
	args := m.Called(ctx, userID, currencyCode, amount, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockCurrencyRepo *MockCurrencyRepository
	mockBalanceRepo  *MockBalanceRepository
	mockUserRepo     *MockUserRepository
	mockAudit        *MockAuditService
	currencySvc      portssvc.CurrencySvcFacade
	balanceSvc       portssvc.BalanceSvcFacade
	adminID          string
	traderID         string
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAudit = new(MockAuditService)
	suite.currencySvc = services.NewCurrencyService(suite.mockCurrencyRepo, suite.mockUserRepo)
	suite.balanceSvc = services.NewBalanceService(suite.mockBalanceRepo, suite.mockCurrencyRepo, suite.mockAudit)
	suite.adminID = uuid.NewString()
	suite.traderID = uuid.NewString()
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_AdminOnly() {
	ctx := context.Background()
	trader := &domain.User{UserID: suite.traderID, Role: domain.RoleTrader}
	req := dto.CreateCurrencyRequest{CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.traderID).Return(trader, nil).Once()

	_, err := suite.currencySvc.CreateCurrency(ctx, req, suite.traderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	admin := &domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}
	req := dto.CreateCurrencyRequest{CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(admin, nil).Once()
	suite.mockCurrencyRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).Return(nil).Once()

	created, err := suite.currencySvc.CreateCurrency(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal("GBP", created.CurrencyCode)
	suite.Equal(suite.adminID, created.CreatedBy)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDepositFunds_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(500)
	usd := &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	credited := &domain.Balance{UserID: suite.traderID, CurrencyCode: "USD", Amount: amount}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()
	suite.mockBalanceRepo.On("CreditBalance", ctx, suite.traderID, "USD", amount, suite.traderID).Return(credited, nil).Once()
	suite.mockAudit.On("Record", ctx, suite.traderID, domain.AuditFundsDeposited, "balance", suite.traderID, mock.Anything).Return(nil).Once()

	balance, err := suite.balanceSvc.DepositFunds(ctx, suite.traderID, dto.DepositFundsRequest{CurrencyCode: "USD", Amount: amount})

	suite.Require().NoError(err)
	suite.True(balance.Amount.Equal(amount))
	suite.mockBalanceRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDepositFunds_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.balanceSvc.DepositFunds(ctx, suite.traderID, dto.DepositFundsRequest{CurrencyCode: "USD", Amount: decimal.Zero})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "CreditBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestDepositFunds_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.balanceSvc.DepositFunds(ctx, suite.traderID, dto.DepositFundsRequest{CurrencyCode: "XYZ", Amount: decimal.NewFromInt(10)})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestDepositFunds_AuditFailureIsNotFatal() {
	ctx := context.Background()
	amount := decimal.NewFromInt(50)
	usd := &domain.Currency{CurrencyCode: "USD"}
	credited := &domain.Balance{UserID: suite.traderID, CurrencyCode: "USD", Amount: amount}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()
	suite.mockBalanceRepo.On("CreditBalance", ctx, suite.traderID, "USD", amount, suite.traderID).Return(credited, nil).Once()
	suite.mockAudit.On("Record", ctx, suite.traderID, domain.AuditFundsDeposited, "balance", suite.traderID, mock.Anything).Return(apperrors.ErrInternal).Once()

	balance, err := suite.balanceSvc.DepositFunds(ctx, suite.traderID, dto.DepositFundsRequest{CurrencyCode: "USD", Amount: amount})

	suite.Require().NoError(err, "deposit succeeds even when the audit write fails")
	suite.NotNil(balance)
}

func (suite *CurrencyServiceTestSuite) TestGetBalances() {
	ctx := context.Background()
	balances := []domain.Balance{
		{UserID: suite.traderID, CurrencyCode: "EUR", Amount: decimal.NewFromInt(200)},
		{UserID: suite.traderID, CurrencyCode: "USD", Amount: decimal.NewFromInt(1000)},
	}

	suite.mockBalanceRepo.On("FindBalancesByUserID", ctx, suite.traderID).Return(balances, nil).Once()

	got, err := suite.balanceSvc.GetBalances(ctx, suite.traderID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *CurrencyServiceTestSuite) TestGetBalance_Success() {
	ctx := context.Background()
	usd := &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	balance := &domain.Balance{UserID: suite.traderID, CurrencyCode: "USD", Amount: decimal.NewFromInt(1000)}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(usd, nil).Once()
	suite.mockBalanceRepo.On("FindBalance", ctx, suite.traderID, "USD").Return(balance, nil).Once()

	got, err := suite.balanceSvc.GetBalance(ctx, suite.traderID, "USD")

	suite.Require().NoError(err)
	suite.True(got.Amount.Equal(decimal.NewFromInt(1000)))
}

func (suite *CurrencyServiceTestSuite) TestGetBalance_MissingRowIsZero() {
	ctx := context.Background()
	eur := &domain.Currency{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(eur, nil).Once()
	suite.mockBalanceRepo.On("FindBalance", ctx, suite.traderID, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.balanceSvc.GetBalance(ctx, suite.traderID, "EUR")

	suite.Require().NoError(err, "a user who never held the currency has a zero balance")
	suite.True(got.Amount.IsZero())
	suite.Equal("EUR", got.CurrencyCode)
}

func (suite *CurrencyServiceTestSuite) TestGetBalance_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.balanceSvc.GetBalance(ctx, suite.traderID, "XYZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "FindBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
