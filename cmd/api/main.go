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

	httptransport "github.com/spec-kit/ticket-admin/internal/api/http"
	"github.com/spec-kit/ticket-admin/internal/api/http/handlers"
	"github.com/spec-kit/ticket-admin/internal/auth"
	"github.com/spec-kit/ticket-admin/internal/config"
	"github.com/spec-kit/ticket-admin/internal/domain"
	"github.com/spec-kit/ticket-admin/internal/events"
	"github.com/spec-kit/ticket-admin/internal/observability"
	"github.com/spec-kit/ticket-admin/internal/persistence"
	"github.com/spec-kit/ticket-admin/internal/repository"
	"github.com/spec-kit/ticket-admin/internal/service"
	"github.com/spec-kit/ticket-admin/internal/store"
	"github.com/spec-kit/ticket-admin/internal/worker"
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

	var (
		docStore store.Store
		pg       *persistence.Postgres
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		docStore = store.NewPostgresStore(pg.PoolHandle())
	default:
		docStore, err = store.NewFileStore(cfg.Store.FilePath, logger)
		if err != nil {
			logger.Fatal("failed to open data file", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	userRepo := repository.NewUserRepository(docStore)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	cacheTTL := time.Duration(cfg.App.CacheTTLSeconds) * time.Second
	eventsSvc := service.NewResourceService(repository.NewCollection[domain.Event](docStore, "events"), dispatcher, redis, cacheTTL)
	sectorsSvc := service.NewResourceService(repository.NewCollection[domain.Sector](docStore, "sectors"), dispatcher, redis, cacheTTL)
	lotsSvc := service.NewResourceService(repository.NewCollection[domain.Lot](docStore, "lots"), dispatcher, redis, cacheTTL)
	couponsSvc := service.NewResourceService(repository.NewCollection[domain.Coupon](docStore, "coupons"), dispatcher, redis, cacheTTL)
	settingsSvc := service.NewResourceService(repository.NewCollection[domain.Settings](docStore, "settings"), dispatcher, redis, cacheTTL)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Resources: []httptransport.ResourceRegistrar{
			handlers.NewResourcesHandler(eventsSvc),
			handlers.NewResourcesHandler(sectorsSvc),
			handlers.NewResourcesHandler(lotsSvc),
			handlers.NewResourcesHandler(couponsSvc),
			handlers.NewResourcesHandler(settingsSvc),
		},
		AuthMiddleware: authMiddleware,
		LoginLimiter:   httptransport.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginRateBurst),
	})

	go func() {
		if err := httptransport.Listen(app, logger, cfg.App.Host, cfg.App.Port, cfg.App.PortRetries); err != nil {
			logger.Fatal("http listen", zap.Error(err))
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
