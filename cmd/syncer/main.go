package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"campaign_sync/internal/circuitbreaker"
	"campaign_sync/internal/config"
	"campaign_sync/internal/db"
	"campaign_sync/internal/jobs"
	"campaign_sync/internal/platform"
	"campaign_sync/internal/platform/facebook"
	"campaign_sync/internal/platform/google"
	"campaign_sync/internal/platform/reddit"
	"campaign_sync/internal/platform/rest"
	"campaign_sync/internal/publisher"
	"campaign_sync/internal/scheduler"
	"campaign_sync/internal/server"
	"campaign_sync/internal/service"
	"campaign_sync/internal/storage/postgres"
	"campaign_sync/internal/validation"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if cfg.Database.RunMigrations {
		if err := db.Migrate(cfg.Database.URL()); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	conn, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	logger.Info("connected to database")

	events, err := publisher.NewRabbitMQ(publisher.Config{
		URL:      cfg.RabbitMQ.URL,
		Exchange: cfg.RabbitMQ.Exchange,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer events.Close()

	// Stores
	campaignStore := postgres.NewCampaignStore(conn)
	syncStateStore := postgres.NewSyncStateStore(conn)
	txManager := postgres.NewTransactionManager(conn)

	// Platforms
	defaults := platform.NewDefaultsResolver()
	validator := validation.New(defaults)
	adapters := newAdapters(cfg, defaults, logger)
	if len(adapters.Platforms()) == 0 {
		logger.Warn("no platform enabled")
	}

	var breakerOpts []circuitbreaker.RegistryOption
	for name, override := range cfg.PlatformOverrides() {
		breakerOpts = append(breakerOpts, circuitbreaker.WithPlatformConfig(name, override))
	}
	breakers := circuitbreaker.NewRegistry(cfg.CircuitBreaker, logger, breakerOpts...)

	// Services
	applier := service.NewDiffApplier(campaignStore, syncStateStore, adapters, breakers, logger, cfg.Sync)
	syncService := service.NewSyncService(campaignStore, txManager, validator, applier, events, logger, cfg.Sync)
	reconciler := service.NewReconciler(campaignStore, syncStateStore, txManager, adapters, breakers, logger, cfg.Sync)
	retryHandler := service.NewRetryHandler(campaignStore, syncStateStore, validator, adapters, breakers, logger, cfg.Sync)

	dispatcher := jobs.NewDispatcher(syncService, retryHandler, logger)
	ops := server.NewHandler(conn, breakers, logger)

	supervisor := suture.New("campaign-sync", suture.Spec{
		EventHook: (&sutureslog.Handler{Logger: logger}).MustHook(),
		Timeout:   cfg.HTTP.ShutdownTimeout,
	})
	supervisor.Add(scheduler.NewScheduler("reconcile", reconciler, cfg.Sync.PollInterval, cfg.Sync.RunTimeout, logger))
	supervisor.Add(scheduler.NewScheduler("retry-failed-syncs", retryHandler, cfg.Sync.RetryInterval, cfg.Sync.RunTimeout, logger))
	supervisor.Add(jobs.NewConsumer(jobs.ConsumerConfig{
		URL:      cfg.RabbitMQ.URL,
		Queue:    cfg.RabbitMQ.JobQueue,
		Prefetch: cfg.RabbitMQ.JobPrefetch,
	}, dispatcher, logger))
	supervisor.Add(server.NewService(cfg.HTTP.Addr, ops.Router(), cfg.HTTP.ReadHeaderTimeout, cfg.HTTP.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting campaign syncer",
		"platforms", adapters.Platforms(),
		"poll_interval", cfg.Sync.PollInterval,
		"retry_interval", cfg.Sync.RetryInterval,
		"max_retries", cfg.Sync.MaxRetries,
		"ops_addr", cfg.HTTP.Addr,
	)

	if err := supervisor.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("supervisor error", "error", err)
		os.Exit(1)
	}
}

// newAdapters builds one REST-backed adapter per enabled platform.
func newAdapters(cfg *config.Config, defaults *platform.DefaultsResolver, logger *slog.Logger) *platform.Registry {
	registry := platform.NewRegistry()

	client := func(name string, p config.PlatformConfig) *rest.Client {
		return rest.New(name, rest.Config{
			BaseURL:    p.BaseURL,
			Token:      p.Token,
			Timeout:    p.Timeout,
			MaxRetries: p.MaxRetries,
			Backoff:    cfg.Backoff,
		}, logger)
	}

	if p := cfg.Platforms.Reddit; p.Enabled {
		registry.Register(reddit.New(client("reddit", p), p.AccountID, defaults))
	}
	if p := cfg.Platforms.Google; p.Enabled {
		registry.Register(google.New(client("google", p), p.AccountID, defaults))
	}
	if p := cfg.Platforms.Facebook; p.Enabled {
		registry.Register(facebook.New(client("facebook", p), p.AccountID, defaults))
	}

	return registry
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
