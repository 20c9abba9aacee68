package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/aquaflow/ticketing/internal/api/http"
	"github.com/aquaflow/ticketing/internal/api/http/handlers"
	"github.com/aquaflow/ticketing/internal/auth"
	"github.com/aquaflow/ticketing/internal/config"
	"github.com/aquaflow/ticketing/internal/events"
	"github.com/aquaflow/ticketing/internal/observability"
	"github.com/aquaflow/ticketing/internal/persistence"
	"github.com/aquaflow/ticketing/internal/repository"
	"github.com/aquaflow/ticketing/internal/service"
	"github.com/aquaflow/ticketing/internal/worker"
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

	if cfg.Seed.Enabled {
		if err := persistence.Seed(ctx, pg.PoolHandle(), cfg.Seed, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed bootstrap data", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	priceRepo := repository.NewPriceRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	scanLogRepo := repository.NewScanLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CategoryRepo: categoryRepo,
		PriceRepo:    priceRepo,
		SessionRepo:  sessionRepo,
		PackageRepo:  packageRepo,
		LocationRepo: locationRepo,
	})
	issuanceService := service.NewIssuanceService(service.IssuanceDependencies{
		TicketRepo:   ticketRepo,
		CategoryRepo: categoryRepo,
		PriceRepo:    priceRepo,
		Dispatcher:   dispatcher,
	})
	scanService := service.NewScanService(service.ScanDependencies{
		TicketRepo:  ticketRepo,
		ScanLogRepo: scanLogRepo,
		Dispatcher:  dispatcher,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		TicketRepo: ticketRepo,
		Cache:      redis,
		CacheTTL:   cfg.Redis.ReportCacheTTL,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Tickets:        handlers.NewTicketsHandler(issuanceService, scanService, metrics),
		Reports:        handlers.NewReportsHandler(reportService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: authMiddleware,
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
