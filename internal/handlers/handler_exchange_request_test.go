package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/handlers"
	"github.com/peerfx/peerfx_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeService ---
type MockExchangeService struct {
	mock.Mock
}

var _ portssvc.ExchangeSvcFacade = (*MockExchangeService)(nil)

func (m *MockExchangeService) CreateExchangeRequest(ctx context.Context, req dto.CreateExchangeRequestRequest, requesterID string) (*domain.ExchangeRequest, error) {
	args := m.Called(ctx, req, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRequest), args.Error(1)
}

func (m *MockExchangeService) GetExchangeRequest(ctx context.Context, requestID string) (*domain.ExchangeRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRequest), args.Error(1)
}

func (m *MockExchangeService) ListExchangeRequests(ctx context.Context, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExchangeRequestsResponse), args.Error(1)
}

func (m *MockExchangeService) ListUserExchangeRequests(ctx context.Context, requesterID string, params dto.ListExchangeRequestsParams) (*dto.ListExchangeRequestsResponse, error) {
	args := m.Called(ctx, requesterID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExchangeRequestsResponse), args.Error(1)
}

func (m *MockExchangeService) CancelExchangeRequest(ctx context.Context, requestID string, actorID string) error {
	args := m.Called(ctx, requestID, actorID)
	return args.Error(0)
}

func (m *MockExchangeService) CreateRateOffer(ctx context.Context, requestID string, req dto.CreateRateOfferRequest, bidderID string) (*domain.RateOffer, error) {
	args := m.Called(ctx, requestID, req, bidderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateOffer), args.Error(1)
}

func (m *MockExchangeService) ListOffersForRequest(ctx context.Context, requestID string) ([]domain.RateOffer, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateOffer), args.Error(1)
}

func (m *MockExchangeService) AcceptOffer(ctx context.Context, requestID string, offerID string, acceptingUserID string, termsAccepted bool) (*dto.SettlementResponse, error) {
	args := m.Called(ctx, requestID, offerID, acceptingUserID, termsAccepted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementResponse), args.Error(1)
}

// --- Test Suite ---
type ExchangeHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockExchangeService *MockExchangeService
	jwtSecret           string
	userID              string
}

func (suite *ExchangeHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "peerfx-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExchangeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockExchangeService = new(MockExchangeService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger route registration
	}
	services := &portssvc.ServiceContainer{
		Exchange: suite.mockExchangeService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *ExchangeHandlerTestSuite) doAuthed(method, url, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ExchangeHandlerTestSuite) TestGetRequest_Success() {
	requestID := uuid.NewString()
	request := &domain.ExchangeRequest{
		ExchangeRequestID: requestID,
		RequesterID:       suite.userID,
		FromCurrencyCode:  "USD",
		ToCurrencyCode:    "EUR",
		Amount:            decimal.NewFromInt(1000),
		Priority:          domain.PriorityNormal,
		Status:            domain.RequestActive,
	}

	suite.mockExchangeService.On("GetExchangeRequest", mock.Anything, requestID).Return(request, nil).Once()

	w := suite.doAuthed(http.MethodGet, "/api/v1/exchange-requests/"+requestID, "")

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ExchangeRequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(requestID, body.ExchangeRequestID)
	suite.Equal(domain.RequestActive, body.Status)
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ExchangeHandlerTestSuite) TestGetRequest_NotFound() {
	requestID := uuid.NewString()

	suite.mockExchangeService.On("GetExchangeRequest", mock.Anything, requestID).
		Return(nil, fmt.Errorf("failed to get exchange request %s: %w", requestID, apperrors.ErrNotFound)).Once()

	w := suite.doAuthed(http.MethodGet, "/api/v1/exchange-requests/"+requestID, "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ExchangeHandlerTestSuite) TestGetRequest_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/exchange-requests/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExchangeService.AssertNotCalled(suite.T(), "GetExchangeRequest", mock.Anything, mock.Anything)
}

func (suite *ExchangeHandlerTestSuite) TestCreateRequest_Success() {
	request := &domain.ExchangeRequest{
		ExchangeRequestID: uuid.NewString(),
		RequesterID:       suite.userID,
		FromCurrencyCode:  "USD",
		ToCurrencyCode:    "EUR",
		Amount:            decimal.NewFromInt(1000),
		Priority:          domain.PriorityNormal,
		Status:            domain.RequestActive,
	}

	suite.mockExchangeService.On("CreateExchangeRequest", mock.Anything, mock.MatchedBy(func(r dto.CreateExchangeRequestRequest) bool {
		return r.FromCurrencyCode == "USD" && r.ToCurrencyCode == "EUR"
	}), suite.userID).Return(request, nil).Once()

	body := `{"fromCurrencyCode":"USD","toCurrencyCode":"EUR","amount":"1000"}`
	w := suite.doAuthed(http.MethodPost, "/api/v1/exchange-requests", body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ExchangeHandlerTestSuite) TestAcceptOffer_Success() {
	requestID := uuid.NewString()
	offerID := uuid.NewString()
	settlement := &dto.SettlementResponse{
		Request: dto.ExchangeRequestResponse{
			ExchangeRequestID: requestID,
			Status:            domain.RequestCompleted,
			SelectedOfferID:   &offerID,
		},
		Offer: dto.RateOfferResponse{
			RateOfferID: offerID,
			Status:      domain.OfferAccepted,
		},
	}

	suite.mockExchangeService.On("AcceptOffer", mock.Anything, requestID, offerID, suite.userID, true).Return(settlement, nil).Once()

	url := fmt.Sprintf("/api/v1/exchange-requests/%s/offers/%s/accept", requestID, offerID)
	w := suite.doAuthed(http.MethodPost, url, `{"termsAccepted":true}`)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.RequestCompleted, body.Request.Status)
	suite.Equal(domain.OfferAccepted, body.Offer.Status)
	suite.mockExchangeService.AssertExpectations(suite.T())
}

func (suite *ExchangeHandlerTestSuite) TestAcceptOffer_ConflictMapsTo409() {
	requestID := uuid.NewString()
	offerID := uuid.NewString()

	suite.mockExchangeService.On("AcceptOffer", mock.Anything, requestID, offerID, suite.userID, true).
		Return(nil, fmt.Errorf("%w: request is already COMPLETED", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/exchange-requests/%s/offers/%s/accept", requestID, offerID)
	w := suite.doAuthed(http.MethodPost, url, `{"termsAccepted":true}`)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ExchangeHandlerTestSuite) TestAcceptOffer_InsufficientFundsMapsTo422() {
	requestID := uuid.NewString()
	offerID := uuid.NewString()

	suite.mockExchangeService.On("AcceptOffer", mock.Anything, requestID, offerID, suite.userID, true).
		Return(nil, fmt.Errorf("%w: user has insufficient EUR balance", apperrors.ErrInsufficientFunds)).Once()

	url := fmt.Sprintf("/api/v1/exchange-requests/%s/offers/%s/accept", requestID, offerID)
	w := suite.doAuthed(http.MethodPost, url, `{"termsAccepted":true}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ExchangeHandlerTestSuite) TestCancelRequest_ForbiddenMapsTo403() {
	requestID := uuid.NewString()

	suite.mockExchangeService.On("CancelExchangeRequest", mock.Anything, requestID, suite.userID).
		Return(fmt.Errorf("%w: only the requester may cancel a request", apperrors.ErrForbidden)).Once()

	w := suite.doAuthed(http.MethodPost, "/api/v1/exchange-requests/"+requestID+"/cancel", "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestExchangeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeHandlerTestSuite))
}
