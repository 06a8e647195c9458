package handlers

import (
	"fmt"
	"regexp"

	portssvc "github.com/SscSPs/currency_exchange_service/internal/core/ports/services"
	"github.com/SscSPs/currency_exchange_service/internal/middleware"
	"github.com/SscSPs/currency_exchange_service/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

var currencyCodeRx = regexp.MustCompile(`^[A-Za-z]{3}$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidations()

	r.GET("/", getHome)
	registerHealthRoutes(r, services.Health)

	rateLimiter, err := newRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("failed to build rate limiter: %w", err)
	}

	// The convert endpoint is the only hot path; it carries the per-IP limit.
	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter))
	registerConvertRoutes(v1, services.Conversion)

	return nil
}

// registerValidations wires custom binding validators. currency_code checks
// shape only (3 alpha letters); membership in the supported set is enforced
// by the domain layer.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
			return currencyCodeRx.MatchString(fl.Field().String())
		})
	}
}

func newRateLimiter(format string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, err
	}
	return limiter.New(memorystore.NewStore(), rate), nil
}
