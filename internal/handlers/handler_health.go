package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// healthHandler handles health probe requests.
type healthHandler struct {
	healthService portssvc.HealthSvcFacade
}

// registerHealthRoutes registers the health probe route.
func registerHealthRoutes(r *gin.Engine, healthService portssvc.HealthSvcFacade) {
	h := &healthHandler{healthService: healthService}
	r.GET("/health", h.check)
}

// check godoc
// @Summary Health probe
// @Description Aggregate status over store, cache and each provider endpoint
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthReport
// @Router /health [get]
func (h *healthHandler) check(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	c.JSON(http.StatusOK, report)
}
