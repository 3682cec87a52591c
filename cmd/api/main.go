package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/metering-service/internal/api/http"
	"github.com/spec-kit/metering-service/internal/api/http/handlers"
	"github.com/spec-kit/metering-service/internal/auth"
	"github.com/spec-kit/metering-service/internal/config"
	"github.com/spec-kit/metering-service/internal/observability"
	"github.com/spec-kit/metering-service/internal/persistence"
	"github.com/spec-kit/metering-service/internal/repository"
	"github.com/spec-kit/metering-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	paramRepo := repository.NewSystemParameterRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	meterRepo := repository.NewMeterRepository(pool)
	readingRepo := repository.NewReadingRepository(pool)
	tariffRepo := repository.NewTariffRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)

	secretboxKey, err := auth.ParseSecretboxKey(cfg.Auth.SecretboxKey)
	if err != nil {
		logger.Fatal("invalid AUTH_SECRETBOX_KEY", zap.Error(err))
	}

	var materialSource auth.MaterialSource = auth.NewParameterSource(
		paramRepo, cfg.Auth.SigningParamName, secretboxKey, cfg.Auth.LookupTimeout())
	if ttl := cfg.Auth.MaterialCacheTTL(); ttl > 0 {
		materialSource = auth.NewCachedMaterialSource(materialSource, ttl)
	}

	// Token issuance cannot work without signing material; fail fast
	// rather than serving logins that can only 503.
	if _, err := materialSource.Material(ctx); err != nil {
		logger.Fatal("signing material unavailable", zap.Error(err))
	}

	tokenManager := auth.NewTokenManager(materialSource)

	var revocationStore auth.RevocationStore
	switch cfg.Auth.RevocationBackend {
	case "redis":
		revocationStore = auth.NewRedisRevocationStore(redis.Client)
		logger.Info("using redis revocation store")
	default:
		revocationStore = auth.NewMemoryRevocationStore()
		logger.Info("using in-memory revocation store")
	}

	authService := service.NewAuthService(service.AuthDependencies{
		Employees:     employeeRepo,
		Tokens:        tokenManager,
		Revoked:       revocationStore,
		BcryptCost:    cfg.Auth.BcryptCost,
		LookupTimeout: cfg.Auth.LookupTimeout(),
	})
	employeeService := service.NewEmployeeService(employeeRepo, cfg.Auth.BcryptCost)
	companyService := service.NewCompanyService(companyRepo)
	meterService := service.NewMeterService(meterRepo, readingRepo)
	tariffService := service.NewTariffService(tariffRepo)
	invoiceService := service.NewInvoiceService(service.InvoiceDependencies{
		Invoices:  invoiceRepo,
		Companies: companyRepo,
		Meters:    meterRepo,
		Readings:  readingRepo,
		Tariffs:   tariffRepo,
	})

	allowList := auth.NewAllowList(cfg.Auth.PublicPaths, cfg.Auth.PublicPathPrefixes)
	gate := auth.NewGate(tokenManager, revocationStore, allowList, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Companies: handlers.NewCompaniesHandler(companyService),
		Meters:    handlers.NewMetersHandler(meterService),
		Tariffs:   handlers.NewTariffsHandler(tariffService),
		Invoices:  handlers.NewInvoicesHandler(invoiceService),
		Employees: handlers.NewEmployeesHandler(employeeService),
		Gate:      gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
