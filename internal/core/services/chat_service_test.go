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

// --- Mock ChatRepository ---
type MockChatRepository struct {
	mock.Mock
}

var _ portsrepo.ChatRepositoryFacade = (*MockChatRepository)(nil)

func (m *MockChatRepository) SaveMessage(ctx context.Context, message domain.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessagesByRequestID(ctx context.Context, requestID string, limit int, nextToken *string) ([]domain.ChatMessage, *string, error) {
	args := m.Called(ctx, requestID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.ChatMessage), returnedNextToken, args.Error(2)
}

type ChatServiceTestSuite struct {
	suite.Suite
	mockChatRepo     *MockChatRepository
	mockExchangeRepo *MockExchangeRepository
	mockUserRepo     *MockUserRepository
	notifier         *captureNotifier
	service          portssvc.ChatSvcFacade
	senderID         string
	requestID        string
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.mockChatRepo = new(MockChatRepository)
	suite.mockExchangeRepo = new(MockExchangeRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.notifier = &captureNotifier{}
	suite.service = services.NewChatService(suite.mockChatRepo, suite.mockExchangeRepo, suite.mockUserRepo, suite.notifier)
	suite.senderID = uuid.NewString()
	suite.requestID = uuid.NewString()
}

func (suite *ChatServiceTestSuite) request() *domain.ExchangeRequest {
	return &domain.ExchangeRequest{
		ExchangeRequestID: suite.requestID,
		RequesterID:       uuid.NewString(),
		FromCurrencyCode:  "USD",
		ToCurrencyCode:    "EUR",
		Amount:            decimal.NewFromInt(100),
		Status:            domain.RequestActive,
	}
}

func (suite *ChatServiceTestSuite) TestPostMessage_AsBidder() {
	ctx := context.Background()
	sender := &domain.User{UserID: suite.senderID, Role: domain.RoleTrader}
	offers := []domain.RateOffer{
		{RateOfferID: uuid.NewString(), ExchangeRequestID: suite.requestID, BidderID: suite.senderID, Status: domain.OfferPending},
	}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.request(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.senderID).Return(sender, nil).Once()
	suite.mockExchangeRepo.On("FindOffersByRequestID", ctx, suite.requestID).Return(offers, nil).Once()
	suite.mockChatRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.ChatMessage")).Return(nil).Once()

	message, err := suite.service.PostMessage(ctx, suite.requestID, dto.CreateChatMessageRequest{Body: "can you do 0.92?"}, suite.senderID)

	suite.Require().NoError(err)
	suite.NotEmpty(message.MessageID)
	suite.Equal(suite.requestID, message.ExchangeRequestID)
	suite.Equal("can you do 0.92?", message.Body)

	events := suite.notifier.Events()
	suite.Require().Len(events, 1)
	suite.Equal("chat_message", events[0].Entity)
	suite.mockChatRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestPostMessage_RequestNotFound() {
	ctx := context.Background()

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostMessage(ctx, suite.requestID, dto.CreateChatMessageRequest{Body: "hello"}, suite.senderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func (suite *ChatServiceTestSuite) TestPostMessage_NonParticipant() {
	ctx := context.Background()
	sender := &domain.User{UserID: suite.senderID, Role: domain.RoleTrader}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.request(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.senderID).Return(sender, nil).Once()
	suite.mockExchangeRepo.On("FindOffersByRequestID", ctx, suite.requestID).Return([]domain.RateOffer{}, nil).Once()

	_, err := suite.service.PostMessage(ctx, suite.requestID, dto.CreateChatMessageRequest{Body: "lurking"}, suite.senderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
	suite.Empty(suite.notifier.Events())
}

func (suite *ChatServiceTestSuite) TestListMessages_DefaultsLimit() {
	ctx := context.Background()
	request := suite.request()
	request.RequesterID = suite.senderID
	messages := []domain.ChatMessage{
		{MessageID: uuid.NewString(), ExchangeRequestID: suite.requestID, SenderID: suite.senderID, Body: "first"},
		{MessageID: uuid.NewString(), ExchangeRequestID: suite.requestID, SenderID: suite.senderID, Body: "second"},
	}

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(request, nil).Once()
	suite.mockChatRepo.On("ListMessagesByRequestID", ctx, suite.requestID, 50, (*string)(nil)).Return(messages, nil, nil).Once()

	resp, err := suite.service.ListMessages(ctx, suite.requestID, dto.ListChatMessagesParams{}, suite.senderID)

	suite.Require().NoError(err)
	suite.Len(resp.Messages, 2)
	suite.Equal("first", resp.Messages[0].Body)
	suite.mockChatRepo.AssertExpectations(suite.T())
}

func (suite *ChatServiceTestSuite) TestListMessages_NonParticipant() {
	ctx := context.Background()

	suite.mockExchangeRepo.On("FindRequestByID", ctx, suite.requestID).Return(suite.request(), nil).Once()
	suite.mockExchangeRepo.On("FindOffersByRequestID", ctx, suite.requestID).Return([]domain.RateOffer{}, nil).Once()

	_, err := suite.service.ListMessages(ctx, suite.requestID, dto.ListChatMessagesParams{}, suite.senderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockChatRepo.AssertNotCalled(suite.T(), "ListMessagesByRequestID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
