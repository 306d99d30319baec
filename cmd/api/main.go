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

	httptransport "github.com/isaktapper/klaralyze/internal/api/http"
	"github.com/isaktapper/klaralyze/internal/api/http/handlers"
	"github.com/isaktapper/klaralyze/internal/auth"
	"github.com/isaktapper/klaralyze/internal/config"
	"github.com/isaktapper/klaralyze/internal/observability"
	"github.com/isaktapper/klaralyze/internal/persistence"
	"github.com/isaktapper/klaralyze/internal/repository"
	"github.com/isaktapper/klaralyze/internal/secrets"
	"github.com/isaktapper/klaralyze/internal/service"
	"github.com/isaktapper/klaralyze/internal/session"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	box, err := secrets.NewBox(cfg.Secrets.SealingKey)
	if err != nil {
		logger.Fatal("failed to init sealing key", zap.Error(err))
	}

	pool := pg.PoolHandle()
	orgRepo := repository.NewOrganizationRepository(pool)
	snapshotRepo := repository.NewSnapshotRepository(pool)

	sourceFactory := service.NewZendeskSourceFactory(cfg.Zendesk, logger)
	sessionStore := session.NewStore(redis.Client, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute, logger)

	connectionService := service.NewConnectionService(service.ConnectionDependencies{
		OrgRepo: orgRepo,
		Box:     box,
		Source:  sourceFactory,
		Logger:  logger,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		OrgRepo: orgRepo,
		Box:     box,
		Source:  sourceFactory,
		Zendesk: cfg.Zendesk,
		Logger:  logger,
	})
	importService := service.NewImportService(service.ImportDependencies{
		OrgRepo:      orgRepo,
		SnapshotRepo: snapshotRepo,
		Box:          box,
		Source:       sourceFactory,
		Logger:       logger,
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Connection:     handlers.NewConnectionHandler(connectionService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Import:         handlers.NewImportHandler(importService),
		Session:        handlers.NewSessionHandler(sessionStore),
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
