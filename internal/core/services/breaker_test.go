package services_test

import (
	"context"
	"testing"
	"time"

	rediscache "github.com/SscSPs/currency_exchange_service/internal/adapters/cache"
	"github.com/SscSPs/currency_exchange_service/internal/core/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite
	server  *miniredis.Miniredis
	breaker *services.CircuitBreaker
}

func (suite *CircuitBreakerTestSuite) SetupTest() {
	server, err := miniredis.Run()
	require.NoError(suite.T(), err)
	suite.server = server

	cache := rediscache.NewRedisCache(redis.NewClient(&redis.Options{Addr: server.Addr()}))
	suite.breaker = services.NewCircuitBreaker(cache, 3, 5*time.Minute, 60*time.Second)
}

func (suite *CircuitBreakerTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *CircuitBreakerTestSuite) TestOpensAfterThreshold() {
	ctx := context.Background()

	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "frankfurter"))

	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "frankfurter"))

	// Third failure crosses the threshold and opens the circuit.
	suite.True(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.False(suite.breaker.Allow(ctx, "frankfurter"))
}

func (suite *CircuitBreakerTestSuite) TestOpenCircuitSelfClears() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		suite.breaker.RecordFailure(ctx, "frankfurter")
	}
	suite.False(suite.breaker.Allow(ctx, "frankfurter"))

	suite.server.FastForward(61 * time.Second)

	suite.True(suite.breaker.Allow(ctx, "frankfurter"))
}

func (suite *CircuitBreakerTestSuite) TestOpeningResetsFailureCounter() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		suite.breaker.RecordFailure(ctx, "frankfurter")
	}
	suite.server.FastForward(61 * time.Second)

	// The counter was cleared when the circuit opened, so a single new
	// failure must not reopen it.
	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "frankfurter"))
}

func (suite *CircuitBreakerTestSuite) TestSuccessResetsCounter() {
	ctx := context.Background()

	suite.breaker.RecordFailure(ctx, "frankfurter")
	suite.breaker.RecordFailure(ctx, "frankfurter")
	suite.breaker.RecordSuccess(ctx, "frankfurter")

	// Two fresh failures stay under the threshold.
	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "frankfurter"))
}

func (suite *CircuitBreakerTestSuite) TestProvidersTrackedIndependently() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		suite.breaker.RecordFailure(ctx, "frankfurter")
	}

	suite.False(suite.breaker.Allow(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "freecurrencyapi"))
}

func (suite *CircuitBreakerTestSuite) TestFailureWindowExpires() {
	ctx := context.Background()

	suite.breaker.RecordFailure(ctx, "frankfurter")
	suite.breaker.RecordFailure(ctx, "frankfurter")

	suite.server.FastForward(6 * time.Minute)

	// The old failures aged out; this one starts a fresh window.
	suite.False(suite.breaker.RecordFailure(ctx, "frankfurter"))
	suite.True(suite.breaker.Allow(ctx, "frankfurter"))
}

func TestCircuitBreakerTestSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerTestSuite))
}
