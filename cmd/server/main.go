package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/cvforge/internal/account"
	"github.com/dmitrymomot/cvforge/internal/account/migrations"
	"github.com/dmitrymomot/cvforge/internal/authsession"
	"github.com/dmitrymomot/cvforge/internal/config"
	"github.com/dmitrymomot/cvforge/internal/handlers"
	"github.com/dmitrymomot/cvforge/internal/login"
	"github.com/dmitrymomot/cvforge/internal/server"
	"github.com/dmitrymomot/cvforge/pkg/db"
	"github.com/dmitrymomot/cvforge/pkg/logger"
	"github.com/dmitrymomot/cvforge/pkg/oauth"
	"github.com/dmitrymomot/cvforge/pkg/redis"
	"github.com/dmitrymomot/cvforge/pkg/secrets"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, server.RequestIDExtractor())
	opts := []server.Option{
		server.WithAddress(cfg.HTTPAddr),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	}

	providers, err := config.LoadProviders(cfg.ProvidersFile)
	if err != nil {
		return err
	}
	registry, err := oauth.NewRegistryFromConfigs(providers...)
	if err != nil {
		return err
	}

	secretStore, err := secrets.New(cfg.Secrets.Store())
	if err != nil {
		return err
	}

	sessions, sessionOpts, err := openSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	opts = append(opts, sessionOpts...)

	accounts, accountOpts, err := openAccounts(ctx, cfg, log)
	if err != nil {
		_ = sessions.Close()
		return err
	}
	opts = append(opts, accountOpts...)

	gateway := oauth.NewGateway(registry, secretStore,
		oauth.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		oauth.WithSecretCacheTTL(cfg.SecretCacheTTL),
		oauth.WithLogger(log),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := login.NewMetrics(reg)

	loginOpts := []login.Option{
		login.WithLogger(log),
		login.WithMetrics(metrics),
		login.WithSessionTTL(cfg.SessionTTL),
	}
	initiator := login.NewInitiator(sessions, gateway, loginOpts...)
	callback := login.NewCallback(sessions, gateway, login.NewResolver(accounts, log), loginOpts...)

	auth := handlers.NewAuth(registry, initiator, callback, cfg.BaseURL,
		handlers.WithSuccessURL(cfg.SuccessURL),
		handlers.WithFailureURL(cfg.FailureURL),
		handlers.WithLogger(log),
	)

	opts = append(opts,
		server.WithHandlers(auth),
		server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	// Hooks run in registration order; Sentry flushes last so shutdown errors are shipped.
	if cfg.Log.SentryDSN != "" {
		opts = append(opts, server.WithShutdownHook(logger.FlushSentry(sentryFlushTimeout)))
	}

	log.Info("login providers registered", slog.Any("providers", registry.Names()))
	return server.New(opts...).Run(ctx)
}

func openSessions(ctx context.Context, cfg config.Config, log *slog.Logger) (*authsession.Store, []server.Option, error) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL is not set, authorization sessions are kept in memory")
		store := authsession.NewMemory(cfg.SessionTTL)
		return store, []server.Option{server.WithShutdownHook(func(context.Context) error {
			return store.Close()
		})}, nil
	}

	client, err := redis.Open(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return authsession.NewRedis(client, cfg.SessionTTL), []server.Option{
		server.WithHealthCheck("redis", redis.Healthcheck(client)),
		server.WithShutdownHook(redis.Shutdown(client)),
	}, nil
}

func openAccounts(ctx context.Context, cfg config.Config, log *slog.Logger) (account.Store, []server.Option, error) {
	if cfg.Database.ConnectionString == "" {
		log.Warn("DATABASE_CONN_URL is not set, accounts are kept in memory")
		return account.NewMemory(), nil, nil
	}

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, pool, migrations.FS, ".", cfg.Database.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return account.NewPostgres(pool), []server.Option{
		server.WithHealthCheck("postgres", db.Healthcheck(pool)),
		server.WithShutdownHook(db.Shutdown(pool)),
	}, nil
}
