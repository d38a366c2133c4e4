package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/core/services"
	"github.com/peerfx/peerfx_backend/internal/dto"
	"github.com/peerfx/peerfx_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	userID       string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.userID = uuid.NewString()
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "a-strong-password",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.Equal(domain.RoleTrader, created.Role)
	suite.Equal(created.UserID, created.CreatedBy) // self-registration
	suite.NotEqual(req.Password, created.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, created.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "a-strong-password"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ExistingUser() {
	ctx := context.Background()
	existing := &domain.User{UserID: suite.userID, Name: "Alice", Email: "alice@example.com", Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Alice From Google", "alice@example.com")

	suite.Require().NoError(err)
	suite.Equal(suite.userID, user.UserID)
	suite.Equal("Alice", user.Name) // existing account untouched
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_NewUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "bob@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, "Bob", "bob@example.com")

	suite.Require().NoError(err)
	suite.Equal("Bob", user.Name)
	suite.NotEmpty(user.PasswordHash, "placeholder hash so password login cannot succeed")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotOwner() {
	ctx := context.Background()
	name := "New Name"

	_, err := suite.service.UpdateUser(ctx, suite.userID, dto.UpdateUserRequest{Name: &name}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	name := "New Name"
	existing := &domain.User{UserID: suite.userID, Name: "Old Name", Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, suite.userID, dto.UpdateUserRequest{Name: &name}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("New Name", updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_SelfDelete() {
	ctx := context.Background()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, suite.userID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, suite.userID, suite.userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_OtherUserRequiresAdmin() {
	ctx := context.Background()
	requestingUserID := uuid.NewString()
	trader := &domain.User{UserID: requestingUserID, Role: domain.RoleTrader}

	suite.mockUserRepo.On("FindUserByID", ctx, requestingUserID).Return(trader, nil).Once()

	err := suite.service.DeleteUser(ctx, suite.userID, requestingUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_AdminDeletesOther() {
	ctx := context.Background()
	adminID := uuid.NewString()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, suite.userID, mock.AnythingOfType("time.Time"), adminID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, suite.userID, adminID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: suite.userID, Email: "alice@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "alice@example.com", "correct-password")

	suite.Require().NoError(err)
	suite.Equal(suite.userID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: suite.userID, Email: "alice@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "alice@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	// Same error as a bad password: no email enumeration.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestUpdateRefreshToken() {
	ctx := context.Background()
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockUserRepo.On("UpdateRefreshTokenDetails", ctx, suite.userID, "somehash", expiry).Return(nil).Once()

	err := suite.service.UpdateRefreshToken(ctx, suite.userID, "somehash", expiry)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
