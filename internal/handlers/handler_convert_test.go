package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/dto"
	"github.com/SscSPs/currency_exchange_service/internal/handlers"
	"github.com/SscSPs/currency_exchange_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*dto.ConvertResponse, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertResponse), args.Error(1)
}

type ConvertHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockConversionService
}

func (suite *ConvertHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockSvc = new(MockConversionService)
	suite.router = gin.New()

	cfg := &config.Config{RateLimit: "1000-M"}
	services := &portssvc.ServiceContainer{Conversion: suite.mockSvc}
	require.NoError(suite.T(), handlers.RegisterRoutes(suite.router, cfg, services))
}

func (suite *ConvertHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ConvertHandlerTestSuite) TestConvert_Success() {
	response := &dto.ConvertResponse{
		Data: dto.ConversionData{
			From:        "USD",
			To:          "EUR",
			Amount:      "100.00",
			Result:      "92.00",
			Rate:        "0.92",
			LastUpdated: time.Now().UTC(),
		},
		Meta: dto.ConversionMeta{Source: "cache"},
	}
	suite.mockSvc.On("Convert", mock.Anything, "USD", "EUR", mock.MatchedBy(func(amount decimal.Decimal) bool {
		return amount.Equal(decimal.NewFromInt(100))
	})).Return(response, nil).Once()

	w := suite.get("/api/v1/convert?from=USD&to=EUR&amount=100")

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ConvertResponse
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("92.00", body.Data.Result)
	suite.Equal("0.92", body.Data.Rate)
	suite.Equal("cache", body.Meta.Source)
	suite.GreaterOrEqual(body.Meta.ExecutionTimeMS, 0.0)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *ConvertHandlerTestSuite) TestConvert_BindingFailures() {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing from", query: "to=EUR&amount=100"},
		{name: "missing to", query: "from=USD&amount=100"},
		{name: "missing amount", query: "from=USD&to=EUR"},
		{name: "malformed code", query: "from=US&to=EUR&amount=100"},
		{name: "numeric code", query: "from=123&to=EUR&amount=100"},
		{name: "identical pair", query: "from=USD&to=USD&amount=100"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.get("/api/v1/convert?" + tt.query)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockSvc.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConvertHandlerTestSuite) TestConvert_InvalidAmount() {
	for _, amount := range []string{"abc", "-5", "0"} {
		w := suite.get(fmt.Sprintf("/api/v1/convert?from=USD&to=EUR&amount=%s", amount))
		suite.Equal(http.StatusBadRequest, w.Code)
	}
	suite.mockSvc.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConvertHandlerTestSuite) TestConvert_UnsupportedCurrency() {
	suite.mockSvc.On("Convert", mock.Anything, "XXX", "EUR", mock.Anything).
		Return(nil, fmt.Errorf("%w: unsupported currency code: XXX", apperrors.ErrValidation)).Once()

	w := suite.get("/api/v1/convert?from=XXX&to=EUR&amount=100")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "unsupported currency code")
}

func (suite *ConvertHandlerTestSuite) TestConvert_ProvidersUnavailable() {
	suite.mockSvc.On("Convert", mock.Anything, "USD", "EUR", mock.Anything).
		Return(nil, fmt.Errorf("%w: all providers failed for USD/EUR", apperrors.ErrServiceUnavailable)).Once()

	w := suite.get("/api/v1/convert?from=USD&to=EUR&amount=100")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Contains(w.Body.String(), "currently unavailable")
}

func (suite *ConvertHandlerTestSuite) TestConvert_UnexpectedError() {
	suite.mockSvc.On("Convert", mock.Anything, "USD", "EUR", mock.Anything).
		Return(nil, fmt.Errorf("connection reset")).Once()

	w := suite.get("/api/v1/convert?from=USD&to=EUR&amount=100")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestConvertHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ConvertHandlerTestSuite))
}
