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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditLogs(ctx context.Context, limit int, nextToken *string) ([]domain.AuditLog, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.AuditLog), returnedNextToken, args.Error(2)
}

type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.AuditSvcFacade
	adminID       string
	traderID      string
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.adminID = uuid.NewString()
	suite.traderID = uuid.NewString()
}

func (suite *AuditServiceTestSuite) TestRecord_FillsIDAndTimestamp() {
	ctx := context.Background()
	var saved domain.AuditLog

	suite.mockAuditRepo.On("SaveAuditLog", ctx, mock.AnythingOfType("domain.AuditLog")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.AuditLog)
		}).Return(nil).Once()

	err := suite.service.Record(ctx, suite.traderID, domain.AuditRequestCreated, "exchange_request", "req-1", `{}`)

	suite.Require().NoError(err)
	suite.NotEmpty(saved.AuditID)
	suite.False(saved.CreatedAt.IsZero())
	suite.Equal(domain.AuditRequestCreated, saved.Action)
	suite.Equal(suite.traderID, saved.ActorID)
}

func (suite *AuditServiceTestSuite) TestListAuditLogs_AdminOnly() {
	ctx := context.Background()
	trader := &domain.User{UserID: suite.traderID, Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.traderID).Return(trader, nil).Once()

	_, err := suite.service.ListAuditLogs(ctx, suite.traderID, dto.ListAuditLogsParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "ListAuditLogs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuditServiceTestSuite) TestListAuditLogs_Success() {
	ctx := context.Background()
	admin := &domain.User{UserID: suite.adminID, Role: domain.RoleAdmin}
	entries := []domain.AuditLog{
		{AuditID: uuid.NewString(), ActorID: suite.traderID, Action: domain.AuditOfferAccepted, EntityType: "rate_offer", EntityID: "o-1"},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.adminID).Return(admin, nil).Once()
	suite.mockAuditRepo.On("ListAuditLogs", ctx, 50, (*string)(nil)).Return(entries, nil, nil).Once()

	resp, err := suite.service.ListAuditLogs(ctx, suite.adminID, dto.ListAuditLogsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Equal(domain.AuditOfferAccepted, resp.Entries[0].Action)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
