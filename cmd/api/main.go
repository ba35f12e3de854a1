package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/dtechsoftwares/ecclesiapro/internal/api/http"
	"github.com/dtechsoftwares/ecclesiapro/internal/api/http/handlers"
	"github.com/dtechsoftwares/ecclesiapro/internal/audit"
	"github.com/dtechsoftwares/ecclesiapro/internal/auth"
	"github.com/dtechsoftwares/ecclesiapro/internal/config"
	"github.com/dtechsoftwares/ecclesiapro/internal/events"
	"github.com/dtechsoftwares/ecclesiapro/internal/observability"
	"github.com/dtechsoftwares/ecclesiapro/internal/service"
	"github.com/dtechsoftwares/ecclesiapro/internal/session"
	"github.com/dtechsoftwares/ecclesiapro/internal/store"
	"github.com/dtechsoftwares/ecclesiapro/internal/worker"
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

	kv, pingers, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer kv.Close() //nolint:errcheck

	gateway := store.NewGateway(kv)
	dispatcher := events.NewInMemoryDispatcher()
	trail := audit.NewTrail()
	metrics := observability.NewMetrics()

	recorder := service.NewAuditRecorder(dispatcher, trail, logger)
	worker.StartAuditRecorder(recorder)

	dispatcher.Subscribe(events.EventViewNavigated, func(_ context.Context, event events.Event) error {
		if p, ok := event.Payload.(events.NavigationPayload); ok {
			metrics.RecordTransition(string(p.View))
		}
		return nil
	})

	manager := session.NewManager(gateway, dispatcher, session.Delays{
		Boot:         cfg.Session.BootDelay(),
		Navigate:     cfg.Session.NavigateDelay(),
		TenantSwitch: cfg.Session.TenantSwitchDelay(),
		Return:       cfg.Session.ReturnDelay(),
	}, logger)

	sessionService := service.NewSessionService(*cfg, service.SessionDependencies{
		Manager:    manager,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	tenantService := service.NewTenantService(gateway, dispatcher)
	insightService := service.NewInsightService(cfg.Insight, dispatcher, logger)

	sessionMiddleware := auth.NewSessionMiddleware(sessionService.TokenManager(), manager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pingers),
		Sessions:          handlers.NewSessionHandler(sessionService),
		Auth:              handlers.NewAuthHandler(sessionService),
		Navigation:        handlers.NewNavigationHandler(sessionService),
		Tenants:           handlers.NewTenantsHandler(tenantService, sessionService, gateway),
		Audit:             handlers.NewAuditHandler(trail, dispatcher),
		System:            handlers.NewSystemHandler(sessionService, gateway, metrics),
		Insights:          handlers.NewInsightsHandler(insightService),
		SessionMiddleware: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildStorage selects the KV backend for the persistence gateway.
func buildStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.KV, map[string]handlers.Pinger, error) {
	pingers := map[string]handlers.Pinger{}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pg, err := store.NewPostgresKV(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := store.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close() //nolint:errcheck
				return nil, nil, err
			}
		}
		pingers["postgres"] = pg
		return pg, pingers, nil
	case config.BackendRedis:
		r := store.NewRedisKV(cfg.Redis, logger)
		pingers["redis"] = r
		return r, pingers, nil
	default:
		logger.Warn("using in-memory storage; state does not survive restarts")
		return store.NewMemoryKV(), pingers, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
