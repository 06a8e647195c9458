package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	// SupportedCurrencies is the set of codes accepted by the API.
	SupportedCurrencies []string

	// Provider endpoints and credentials.
	FrankfurterURL     string
	FreeCurrencyAPIURL string
	FreeCurrencyAPIKey string
	CurrencyFreaksURL  string
	CurrencyFreaksKey  string

	// Live-path provider call policy.
	ProviderTimeout  time.Duration
	ProviderAttempts int
	ProviderBackoff  time.Duration

	// CacheTTL coalesces near-simultaneous duplicate requests; StoreFreshness
	// is how long a persisted rate stays authoritative. They serve different
	// purposes and are tuned independently.
	CacheTTL       time.Duration
	StoreFreshness time.Duration

	// Circuit breaker tuning.
	BreakerFailureThreshold int
	BreakerFailureWindow    time.Duration
	BreakerOpenDuration     time.Duration

	// Sync job: cron schedule, pair list ("USD/EUR" form) and per-provider
	// timeout for the fan-out.
	SyncSchedule string
	SyncPairs    []string
	SyncTimeout  time.Duration

	HealthTimeout time.Duration

	// RateLimit is an ulule/limiter formatted limit for the convert endpoint.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,EUR,GBP,JPY,CHF,CAD,AUD")
	viper.SetDefault("FRANKFURTER_URL", "https://api.frankfurter.app")
	viper.SetDefault("FREECURRENCYAPI_URL", "https://api.freecurrencyapi.com")
	viper.SetDefault("FREECURRENCYAPI_KEY", "")
	viper.SetDefault("CURRENCYFREAKS_URL", "https://api.currencyfreaks.com")
	viper.SetDefault("CURRENCYFREAKS_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "500ms")
	viper.SetDefault("PROVIDER_ATTEMPTS", 3)
	viper.SetDefault("PROVIDER_BACKOFF", "200ms")
	viper.SetDefault("CACHE_TTL", "1s")
	viper.SetDefault("STORE_FRESHNESS", "1h")
	viper.SetDefault("BREAKER_FAILURE_THRESHOLD", 3)
	viper.SetDefault("BREAKER_FAILURE_WINDOW", "5m")
	viper.SetDefault("BREAKER_OPEN_DURATION", "60s")
	viper.SetDefault("SYNC_SCHEDULE", "@hourly")
	viper.SetDefault("SYNC_PAIRS", "USD/EUR,EUR/GBP,USD/GBP")
	viper.SetDefault("SYNC_TIMEOUT", "1s")
	viper.SetDefault("HEALTH_TIMEOUT", "1s")
	viper.SetDefault("RATE_LIMIT", "1000-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.SupportedCurrencies = splitList(viper.GetString("SUPPORTED_CURRENCIES"))
	if len(cfg.SupportedCurrencies) == 0 {
		log.Println("Warning: SUPPORTED_CURRENCIES is empty; every conversion request will be rejected.")
	}

	cfg.FrankfurterURL = viper.GetString("FRANKFURTER_URL")
	cfg.FreeCurrencyAPIURL = viper.GetString("FREECURRENCYAPI_URL")
	cfg.FreeCurrencyAPIKey = viper.GetString("FREECURRENCYAPI_KEY")
	cfg.CurrencyFreaksURL = viper.GetString("CURRENCYFREAKS_URL")
	cfg.CurrencyFreaksKey = viper.GetString("CURRENCYFREAKS_KEY")

	cfg.ProviderTimeout = durationOrDefault("PROVIDER_TIMEOUT", 500*time.Millisecond)
	cfg.ProviderAttempts = viper.GetInt("PROVIDER_ATTEMPTS")
	cfg.ProviderBackoff = durationOrDefault("PROVIDER_BACKOFF", 200*time.Millisecond)

	cfg.CacheTTL = durationOrDefault("CACHE_TTL", time.Second)
	cfg.StoreFreshness = durationOrDefault("STORE_FRESHNESS", time.Hour)

	cfg.BreakerFailureThreshold = viper.GetInt("BREAKER_FAILURE_THRESHOLD")
	cfg.BreakerFailureWindow = durationOrDefault("BREAKER_FAILURE_WINDOW", 5*time.Minute)
	cfg.BreakerOpenDuration = durationOrDefault("BREAKER_OPEN_DURATION", 60*time.Second)

	cfg.SyncSchedule = viper.GetString("SYNC_SCHEDULE")
	cfg.SyncPairs = splitList(viper.GetString("SYNC_PAIRS"))
	cfg.SyncTimeout = durationOrDefault("SYNC_TIMEOUT", time.Second)

	cfg.HealthTimeout = durationOrDefault("HEALTH_TIMEOUT", time.Second)
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return parsed
}
