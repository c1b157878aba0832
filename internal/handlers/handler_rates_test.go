package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
type RateHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockRate *MockRateService
	mockUser *MockUserService
	adminID  string
	userID   string
}

func (suite *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockRate = new(MockRateService)
	suite.mockUser = new(MockUserService)
	suite.adminID = uuid.NewString()
	suite.userID = uuid.NewString()

	cfg := &config.Config{
		JWTSecret:         testJWTSecret,
		JWTExpiryDuration: 30 * time.Minute,
		JWTIssuer:         "currency-converter-api",
		IsProduction:      true,
	}
	container := &portssvc.ServiceContainer{
		User:      suite.mockUser,
		Rate:      suite.mockRate,
		Converter: new(MockConverterService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *RateHandlerTestSuite) request(method, path, userID string, body any) *httptest.ResponseRecorder {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)

	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RateHandlerTestSuite) expectAdmin() {
	admin := &domain.User{UserID: suite.adminID, Username: "admin", IsActive: true, IsAdmin: true}
	suite.mockUser.On("GetUserByID", mock.Anything, suite.adminID).Return(admin, nil).Once()
}

// --- Read routes ---

func (suite *RateHandlerTestSuite) TestGetRate_Success() {
	rate := &domain.CurrencyRate{
		RateID:         uuid.NewString(),
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("0.92"),
		IsActive:       true,
	}

	suite.mockRate.On("GetActiveRate", mock.Anything, "USD", "EUR").Return(rate, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/rates/USD/EUR", suite.userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(rate.RateID, resp.RateID)
	suite.True(resp.Rate.Equal(rate.Rate))
	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestGetRate_NotFound() {
	suite.mockRate.On("GetActiveRate", mock.Anything, "USD", "EUR").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodGet, "/api/v1/rates/USD/EUR", suite.userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestListRates_Success() {
	rates := []domain.CurrencyRate{
		{RateID: uuid.NewString(), BaseCurrency: "USD", TargetCurrency: "EUR"},
		{RateID: uuid.NewString(), BaseCurrency: "EUR", TargetCurrency: "USD"},
	}

	suite.mockRate.On("ListRates", mock.Anything, 100, 0).Return(rates, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/rates", suite.userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Rates, 2)
	suite.mockRate.AssertExpectations(suite.T())
}

// --- Admin routes ---

func (suite *RateHandlerTestSuite) TestCreateRate_Success() {
	suite.expectAdmin()
	req := dto.CreateRateRequest{
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("0.92"),
	}
	created := &domain.CurrencyRate{
		RateID:         uuid.NewString(),
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		Rate:           req.Rate,
		IsActive:       true,
		LastUpdated:    time.Now(),
	}

	suite.mockRate.On("CreateRate", mock.Anything, mock.MatchedBy(func(r dto.CreateRateRequest) bool {
		return r.BaseCurrency == "USD" && r.TargetCurrency == "EUR" && r.Rate.Equal(req.Rate)
	})).Return(created, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/admin/rates", suite.adminID, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.RateID, resp.RateID)
	suite.True(resp.IsActive)
	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestCreateRate_NonAdminForbidden() {
	regular := &domain.User{UserID: suite.userID, Username: "alice", IsActive: true, IsAdmin: false}
	suite.mockUser.On("GetUserByID", mock.Anything, suite.userID).Return(regular, nil).Once()
	req := dto.CreateRateRequest{
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("0.92"),
	}

	w := suite.request(http.MethodPost, "/api/v1/admin/rates", suite.userID, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRate.AssertNotCalled(suite.T(), "CreateRate", mock.Anything, mock.Anything)
}

func (suite *RateHandlerTestSuite) TestUpdateRate_ReactivationConflict() {
	suite.expectAdmin()
	rateID := uuid.NewString()
	active := true
	req := dto.UpdateRateRequest{Rate: decimal.RequireFromString("0.92"), IsActive: &active}

	suite.mockRate.On("UpdateRate", mock.Anything, rateID, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.request(http.MethodPut, "/api/v1/admin/rates/"+rateID, suite.adminID, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestToggleRate_Success() {
	suite.expectAdmin()
	rateID := uuid.NewString()
	toggled := &domain.CurrencyRate{
		RateID:         rateID,
		BaseCurrency:   "USD",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("0.92"),
		IsActive:       false,
	}

	suite.mockRate.On("ToggleRate", mock.Anything, rateID).Return(toggled, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/admin/rates/"+rateID+"/toggle", suite.adminID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.IsActive)
	suite.mockRate.AssertExpectations(suite.T())
}

func (suite *RateHandlerTestSuite) TestDeleteRate_NotFound() {
	suite.expectAdmin()
	rateID := uuid.NewString()

	suite.mockRate.On("DeleteRate", mock.Anything, rateID).Return(apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodDelete, "/api/v1/admin/rates/"+rateID, suite.adminID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockRate.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRateHandler(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}
