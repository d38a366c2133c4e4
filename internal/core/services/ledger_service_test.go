package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/core/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockExchangeRepo    *MockExchangeRepository
	service             portssvc.LedgerSvcFacade
	requesterID         string
	bidderID            string
	requestID           string
	offerID             string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockExchangeRepo = new(MockExchangeRepository)
	suite.service = services.NewLedgerService(suite.mockTransactionRepo, suite.mockExchangeRepo)
	suite.requesterID = uuid.NewString()
	suite.bidderID = uuid.NewString()
	suite.requestID = uuid.NewString()
	suite.offerID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) settledRequest() *domain.ExchangeRequest {
	return &domain.ExchangeRequest{
		ExchangeRequestID: suite.requestID,
		RequesterID:       suite.requesterID,
		FromCurrencyCode:  "USD",
		ToCurrencyCode:    "EUR",
		Amount:            decimal.NewFromInt(1000),
		Status:            domain.RequestCompleted,
		SelectedOfferID:   &suite.offerID,
	}
}

func (suite *LedgerServiceTestSuite) TestGetRequestTransactions_Requester() {
	ctx := context.Background()
	entries := []domain.Transaction{{TransactionID: uuid.NewString(), UserID: suite.requesterID}}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.settledRequest(), nil).Once()
	suite.mockTransactionRepo.On("FindTransactionsByRequestID", ctx, suite.requestID).Return(entries, nil).Once()

	got, err := suite.service.GetRequestTransactions(ctx, suite.requestID, suite.requesterID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func (suite *LedgerServiceTestSuite) TestGetRequestTransactions_WinningBidder() {
	ctx := context.Background()
	offer := &domain.RateOffer{RateOfferID: suite.offerID, ExchangeRequestID: suite.requestID, BidderID: suite.bidderID, Status: domain.OfferAccepted}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.settledRequest(), nil).Once()
	suite.mockExchangeRepo.On("FindOfferByID", ctx, suite.offerID).Return(offer, nil).Once()
	suite.mockTransactionRepo.On("FindTransactionsByRequestID", ctx, suite.requestID).Return([]domain.Transaction{}, nil).Once()

	_, err := suite.service.GetRequestTransactions(ctx, suite.requestID, suite.bidderID)

	suite.Require().NoError(err)
	suite.mockExchangeRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetRequestTransactions_ThirdPartyForbidden() {
	ctx := context.Background()
	offer := &domain.RateOffer{RateOfferID: suite.offerID, ExchangeRequestID: suite.requestID, BidderID: suite.bidderID, Status: domain.OfferAccepted}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.settledRequest(), nil).Once()
	suite.mockExchangeRepo.On("FindOfferByID", ctx, suite.offerID).Return(offer, nil).Once()

	_, err := suite.service.GetRequestTransactions(ctx, suite.requestID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "FindTransactionsByRequestID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListUserTransactions_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.Transaction{{TransactionID: uuid.NewString(), UserID: suite.requesterID}}

	suite.mockTransactionRepo.On("ListTransactionsByUserID", ctx, suite.requesterID, 20, (*string)(nil)).Return(entries, nil, nil).Once()

	resp, err := suite.service.ListUserTransactions(ctx, suite.requesterID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Nil(resp.NextToken)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
