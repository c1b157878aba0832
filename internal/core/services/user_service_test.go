package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portssvc "github.com/mkarasev/currency_converter_app/internal/core/ports/services"
	"github.com/mkarasev/currency_converter_app/internal/core/services"
	"github.com/mkarasev/currency_converter_app/internal/dto"
	"github.com/mkarasev/currency_converter_app/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Password: "s3cretpw"}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == req.Username && u.IsActive && !u.IsAdmin && u.UserID != "" &&
			u.PasswordHash != req.Password && utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(req.Username, user.Username)
	suite.True(user.IsActive)
	suite.False(user.IsAdmin)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Password: "s3cretpw"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Lookups ---

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	expected := &domain.User{UserID: uuid.NewString(), Username: "alice"}

	suite.mockRepo.On("FindUserByID", ctx, expected.UserID).Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, expected.UserID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByUsername_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByUsername(ctx, "ghost")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	expected := []domain.User{
		{UserID: uuid.NewString(), Username: "alice"},
		{UserID: uuid.NewString(), Username: "bob"},
	}

	suite.mockRepo.On("FindUsers", ctx, 100, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, 100, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, users)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Toggles ---

func (suite *UserServiceTestSuite) TestToggleUserActive_Deactivates() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Username: "alice", IsActive: true}

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && !u.IsActive
	})).Return(nil).Once()

	user, err := suite.service.ToggleUserActive(ctx, userID)

	suite.Require().NoError(err)
	suite.False(user.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestToggleUserAdmin_Promotes() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.User{UserID: userID, Username: "alice", IsActive: true, IsAdmin: false}

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == userID && u.IsAdmin
	})).Return(nil).Once()

	user, err := suite.service.ToggleUserAdmin(ctx, userID)

	suite.Require().NoError(err)
	suite.True(user.IsAdmin)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestToggleUserActive_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.ToggleUserActive(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteUser ---

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("DeleteUser", ctx, userID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- EnsureAdminUser ---

func (suite *UserServiceTestSuite) TestEnsureAdminUser_CreatesWhenAbsent() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "admin").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "admin" && u.IsActive
	})).Return(nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "admin" && u.IsAdmin
	})).Return(nil).Once()

	user, err := suite.service.EnsureAdminUser(ctx, "admin", "admin123")

	suite.Require().NoError(err)
	suite.True(user.IsAdmin)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureAdminUser_PromotesExisting() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "admin", IsActive: true, IsAdmin: false}

	suite.mockRepo.On("FindUserByUsername", ctx, "admin").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == existing.UserID && u.IsAdmin
	})).Return(nil).Once()

	user, err := suite.service.EnsureAdminUser(ctx, "admin", "admin123")

	suite.Require().NoError(err)
	suite.True(user.IsAdmin)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureAdminUser_AlreadyAdminNoop() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Username: "admin", IsActive: true, IsAdmin: true}

	suite.mockRepo.On("FindUserByUsername", ctx, "admin").Return(existing, nil).Once()

	user, err := suite.service.EnsureAdminUser(ctx, "admin", "admin123")

	suite.Require().NoError(err)
	suite.True(user.IsAdmin)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureAdminUser_LookupError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindUserByUsername", ctx, "admin").Return(nil, expectedErr).Once()

	user, err := suite.service.EnsureAdminUser(ctx, "admin", "admin123")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
