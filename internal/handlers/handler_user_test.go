package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mkarasev/currency_converter_app/internal/apperrors"
	"github.com/mkarasev/currency_converter_app/internal/core/domain"
	portssvc "github.com/mkarasev/currency_converter_app/internal/core/ports/services"
	"github.com/mkarasev/currency_converter_app/internal/dto"
	"github.com/mkarasev/currency_converter_app/internal/handlers"
	"github.com/mkarasev/currency_converter_app/internal/platform/config"
)

// --- Test Suite ---
type UserHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockUser *MockUserService
	adminID  string
}

func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockUser = new(MockUserService)
	suite.adminID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "currency-converter-api",
		IsProduction:      true,
	}
	container := &portssvc.ServiceContainer{
		User:      suite.mockUser,
		Rate:      new(MockRateService),
		Converter: new(MockConverterService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *UserHandlerTestSuite) request(method, path, userID string) *httptest.ResponseRecorder {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// expectAdmin wires the admin lookup done by the admin-only route group.
func (suite *UserHandlerTestSuite) expectAdmin() {
	admin := &domain.User{UserID: suite.adminID, Username: "admin", IsActive: true, IsAdmin: true}
	suite.mockUser.On("GetUserByID", mock.Anything, suite.adminID).Return(admin, nil).Once()
}

// --- /users/me ---

func (suite *UserHandlerTestSuite) TestMe_Success() {
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Username: "alice", IsActive: true}

	suite.mockUser.On("GetUserByID", mock.Anything, userID).Return(user, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/users/me", userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(userID, resp.UserID)
	suite.Equal("alice", resp.Username)
	suite.mockUser.AssertExpectations(suite.T())
}

// --- Admin user management ---

func (suite *UserHandlerTestSuite) TestListUsers_Success() {
	suite.expectAdmin()
	users := []domain.User{
		{UserID: uuid.NewString(), Username: "alice"},
		{UserID: uuid.NewString(), Username: "bob"},
	}

	suite.mockUser.On("ListUsers", mock.Anything, 100, 0).Return(users, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/admin/users", suite.adminID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListUsersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Users, 2)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestToggleUserActive_Success() {
	suite.expectAdmin()
	targetID := uuid.NewString()
	toggled := &domain.User{UserID: targetID, Username: "alice", IsActive: false}

	suite.mockUser.On("ToggleUserActive", mock.Anything, targetID).Return(toggled, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/admin/users/"+targetID+"/toggle-active", suite.adminID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.IsActive)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestToggleUserActive_SelfRefused() {
	suite.expectAdmin()

	w := suite.request(http.MethodPost, "/api/v1/admin/users/"+suite.adminID+"/toggle-active", suite.adminID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "ToggleUserActive", mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestToggleUserAdmin_SelfRefused() {
	suite.expectAdmin()

	w := suite.request(http.MethodPost, "/api/v1/admin/users/"+suite.adminID+"/toggle-admin", suite.adminID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "ToggleUserAdmin", mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_SelfRefused() {
	suite.expectAdmin()

	w := suite.request(http.MethodDelete, "/api/v1/admin/users/"+suite.adminID, suite.adminID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestDeleteUser_Success() {
	suite.expectAdmin()
	targetID := uuid.NewString()

	suite.mockUser.On("DeleteUser", mock.Anything, targetID).Return(nil).Once()

	w := suite.request(http.MethodDelete, "/api/v1/admin/users/"+targetID, suite.adminID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestDeleteUser_WithConversionHistoryConflict() {
	suite.expectAdmin()
	targetID := uuid.NewString()

	suite.mockUser.On("DeleteUser", mock.Anything, targetID).Return(apperrors.ErrConflict).Once()

	w := suite.request(http.MethodDelete, "/api/v1/admin/users/"+targetID, suite.adminID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestToggleUserActive_NotFound() {
	suite.expectAdmin()
	targetID := uuid.NewString()

	suite.mockUser.On("ToggleUserActive", mock.Anything, targetID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodPost, "/api/v1/admin/users/"+targetID+"/toggle-active", suite.adminID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockUser.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestAdminRoutes_DeactivatedAdminForbidden() {
	inactiveAdmin := &domain.User{UserID: suite.adminID, Username: "admin", IsActive: false, IsAdmin: true}
	suite.mockUser.On("GetUserByID", mock.Anything, suite.adminID).Return(inactiveAdmin, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/admin/users", suite.adminID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUser.AssertNotCalled(suite.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
