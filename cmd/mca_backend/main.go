package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bankops-oss/maker_checker_app/internal/adapters/corebank"
	"github.com/bankops-oss/maker_checker_app/internal/adapters/database/memory"
	"github.com/bankops-oss/maker_checker_app/internal/adapters/database/pgsql"
	"github.com/bankops-oss/maker_checker_app/internal/adapters/identity/static"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/internal/core/services"
	"github.com/bankops-oss/maker_checker_app/internal/handlers"
	"github.com/bankops-oss/maker_checker_app/internal/middleware"
	"github.com/bankops-oss/maker_checker_app/pkg/config"
	"github.com/bankops-oss/maker_checker_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Maker Checker API
// @version 1.0
// @description Maker-checker approval workflow service for financial transactions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// An ill-formed rule table must stop the process, not surface per request.
	if err := rules.DefaultWorkflowTable().CheckExhaustive(); err != nil {
		logger.Error("Workflow rule table is invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	directory := static.NewDirectory(cfg.DemoUserPassword)

	var notifier portssvc.PostApprovalNotifier = corebank.NoopNotifier{}
	if cfg.CoreBankingURL != "" {
		notifier = corebank.NewNotifier(cfg.CoreBankingURL)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, directory, notifier)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the SPA)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories wires postgres-backed storage when PGSQL_URL is set and
// falls back to the in-memory store for demo deployments.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using in-memory storage; data will not survive restarts")
		return portsrepo.RepositoryProvider{
			TransactionRepo: memory.NewTransactionRepository(),
		}, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return portsrepo.RepositoryProvider{
		TransactionRepo: pgsql.NewPgxTransactionRepository(dbPool),
	}, func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations,
	// using the pgx stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
