package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/SscSPs/currency_exchange_service/internal/apperrors"
	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/dto"
	"github.com/SscSPs/currency_exchange_service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConvertRoutes registers the conversion route.
func registerConvertRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)
	rg.GET("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Resolves the current exchange rate for the pair and applies it to the amount
// @Tags convert
// @Produce json
// @Param   from   query string true "Base currency code (3 letters)"
// @Param   to     query string true "Quote currency code (3 letters)"
// @Param   amount query string true "Amount to convert (positive number)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 503 {object} map[string]string "All rate providers unavailable"
// @Router /convert [get]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start := time.Now()

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind convert query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		logger.Warn("Invalid amount", slog.String("amount", req.Amount))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}

	logger = logger.With(slog.String("from", req.From), slog.String("to", req.To))
	logger.Info("Received request to convert currency", slog.String("amount", amount.String()))

	response, err := h.conversionService.Convert(c.Request.Context(), req.From, req.To, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrServiceUnavailable):
			logger.Error("Provider chain exhausted", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate providers are currently unavailable"})
		default:
			logger.Error("Failed to convert currency", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert currency"})
		}
		return
	}

	response.Meta.ExecutionTimeMS = math.Round(float64(time.Since(start).Microseconds())/10) / 100

	logger.Info("Currency converted successfully",
		slog.String("rate", response.Data.Rate),
		slog.String("source", response.Meta.Source),
	)
	c.JSON(http.StatusOK, response)
}
