package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"tradein/internal/config"
	"tradein/internal/domain/service/cart"
	"tradein/internal/domain/service/catalog"
	"tradein/internal/domain/service/submission"
	"tradein/internal/domain/service/tracking"
	"tradein/internal/infrastructure/backend"
	"tradein/internal/infrastructure/persistence"
	"tradein/internal/server"
	"tradein/internal/worker"
	"tradein/pkg/application/connectors"
	"tradein/pkg/application/modules"
	"tradein/pkg/logx"
	"tradein/pkg/middlewarex"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	rdb := rd.Client(ctx)
	defer rd.Close(ctx)

	cartStore := persistence.NewCartStore(rdb, cfg.Cart.KeyPrefix)
	backendClient := backend.NewClient(cfg.Backend)

	catalogService := catalog.NewService(backendClient).
		WithReferenceTTL(cfg.Backend.ReferenceTTL)

	cartEngine := cart.NewEngine(cartStore).
		WithMinimumValue(cfg.Cart.MinimumValue).
		WithBonusRateBps(cfg.Cart.BonusRateBps)

	// Best effort: defaults stay in effect when the backend is unreachable.
	if settings, err := catalogService.LoadSettings(ctx); err == nil {
		cartEngine.ApplySettings(settings)
	}

	if err := catalogService.WarmReferenceData(ctx, ""); err != nil {
		log.Warn("reference data warmup failed", logx.Error(err))
	}

	feedHub := worker.NewFeedHub(catalogService, cfg.Backend.SearchDebounce)
	if err := feedHub.Start(ctx); err != nil {
		return fmt.Errorf("feedHub.Start: %w", err)
	}
	defer feedHub.Stop()

	srv := server.NewServer(
		server.NewCatalogServer(catalogService, feedHub),
		server.NewCartServer(cartEngine),
		server.NewSubmissionServer(submission.NewWorkflow(backendClient, cartEngine)),
		server.NewTrackingServer(tracking.NewService(backendClient)),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.SessionID,
		middlewarex.RequestLogging(masker, cfg.App.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.App.LogFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: shutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:              cfg.App.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.App.MetricsListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
