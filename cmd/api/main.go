package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ecompjr/company-service/internal/api/http"
	"github.com/ecompjr/company-service/internal/api/http/handlers"
	"github.com/ecompjr/company-service/internal/auth"
	"github.com/ecompjr/company-service/internal/config"
	"github.com/ecompjr/company-service/internal/events"
	"github.com/ecompjr/company-service/internal/observability"
	"github.com/ecompjr/company-service/internal/persistence"
	"github.com/ecompjr/company-service/internal/repository"
	"github.com/ecompjr/company-service/internal/service"
	"github.com/ecompjr/company-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(*cfg)
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	companyCache := service.NewNoopCompanyCache()
	if cfg.Cache.Enabled {
		companyCache = service.NewRedisCompanyCache(redis.Client, cfg.Cache.TTL(), logger)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartCacheInvalidation(dispatcher, companyCache, logger)

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdministratorRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		AdministratorRepo: adminRepo,
		Logger:            logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	companyService := service.NewCompanyService(service.CompanyDependencies{
		CompanyRepo: companyRepo,
		Cache:       companyCache,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	metrics := observability.NewMetrics()
	authMiddleware := auth.NewAuthMiddleware(authService, logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.HTTP.RequestTimeout(),
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
		handlers.Dependency{Name: "postgres", Pinger: pg},
		handlers.Dependency{Name: "redis", Pinger: redis},
	)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           handlers.NewAuthHandler(authService),
		Companies:      handlers.NewCompaniesHandler(companyService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics.Handler(),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
