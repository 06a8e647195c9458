package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/SscSPs/currency_exchange_service/internal/adapters/database/pgsql"
	"github.com/SscSPs/currency_exchange_service/internal/core/ports"
	"github.com/SscSPs/currency_exchange_service/internal/core/services"
	"github.com/SscSPs/currency_exchange_service/internal/handlers"
	"github.com/SscSPs/currency_exchange_service/internal/middleware"
	"github.com/SscSPs/currency_exchange_service/internal/platform/config"
	pkgcache "github.com/SscSPs/currency_exchange_service/pkg/cache"
	"github.com/SscSPs/currency_exchange_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	rediscache "github.com/SscSPs/currency_exchange_service/internal/adapters/cache"
	"github.com/SscSPs/currency_exchange_service/internal/adapters/providers"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	// Redis backs both the short-lived rate cache and the breaker counters.
	redisClient, err := pkgcache.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to initialize redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pkgcache.CloseRedisClient(redisClient)

	repo := pgsql.NewPgxRateRepository(dbPool)
	ttlCache := rediscache.NewRedisCache(redisClient)

	// Provider chain in fixed priority order; first success wins.
	providerChain := []ports.RateProvider{
		providers.NewFrankfurter(cfg.FrankfurterURL),
		providers.NewFreeCurrencyAPI(cfg.FreeCurrencyAPIURL, cfg.FreeCurrencyAPIKey),
		providers.NewCurrencyFreaks(cfg.CurrencyFreaksURL, cfg.CurrencyFreaksKey),
	}

	serviceContainer := services.NewServiceContainer(cfg, repo, ttlCache, providerChain, logger)

	// Schedule the hourly rate sync; a failed run is retried on the next tick.
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.SyncSchedule, func() {
		if _, syncErr := serviceContainer.RateSync.SyncRates(context.Background()); syncErr != nil {
			logger.Error("Rate sync run failed", slog.String("error", syncErr.Error()))
		}
	})
	if err != nil {
		logger.Error("Failed to schedule rate sync", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
