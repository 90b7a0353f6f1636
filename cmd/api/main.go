package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/brewcart/api"
	"github.com/angelmondragon/brewcart/api/controllers"
	"github.com/angelmondragon/brewcart/api/routes"
	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/internal/storage"
	"github.com/angelmondragon/brewcart/pkg/config"
	"github.com/angelmondragon/brewcart/pkg/db"
	"github.com/angelmondragon/brewcart/pkg/db/models"
	"github.com/angelmondragon/brewcart/pkg/enums"
	"github.com/angelmondragon/brewcart/pkg/logger"
	"github.com/angelmondragon/brewcart/pkg/metrics"
	"github.com/angelmondragon/brewcart/pkg/migrate"
	"github.com/angelmondragon/brewcart/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"storage": cfg.Storage.Driver.String(),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stateMetrics := metrics.NewStateMetrics(registry)

	// The menu must be available before any session state is touched.
	cat, err := catalog.NewLoader(cfg.Catalog.Timeout, catalog.WithMetrics(stateMetrics)).Load(ctx, cfg.Catalog.Source)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Storage.Driver == enums.StorageDriverRedis || cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	store, closeStore, err := openStore(ctx, cfg, logg, redisClient)
	if err != nil {
		logg.Error(ctx, "failed to open state store", err)
		os.Exit(1)
	}
	defer closeStore()

	gateway, err := storage.NewGateway(store, logg, stateMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create state gateway", err)
		os.Exit(1)
	}

	manager, err := session.NewManager(session.App{
		Catalog: cat,
		Gateway: gateway,
		Logger:  logg,
		Metrics: stateMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	deps := routes.Dependencies{
		Sessions: manager,
		Ready:    map[string]controllers.Pinger{"state": gateway},
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
	if redisClient != nil {
		deps.Idempotency = redisClient
		deps.Ready["redis"] = redisClient
	}

	server := api.NewServer(cfg, routes.NewRouter(cfg, logg, deps))
	ctx = logg.WithField(ctx, "addr", server.Addr)
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
	logg.Info(ctx, "api server stopped")
}

// openStore returns the durable store selected by BREWCART_STORAGE_DRIVER and
// a func that releases its connection.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) (storage.Store, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case enums.StorageDriverMemory:
		logg.Warn(ctx, "memory storage selected; state is lost on restart")
		return storage.NewMemoryStore(), noop, nil
	case enums.StorageDriverRedis:
		store, err := storage.NewRedisStore(redisClient, cfg.Storage.StateTTL)
		return store, noop, err
	case enums.StorageDriverPostgres, enums.StorageDriverSQLite:
		client, err := db.New(ctx, cfg.DB, cfg.Storage.Driver, logg)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if err := client.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}
		if err := prepareSchema(ctx, cfg, logg, client); err != nil {
			closeDB()
			return nil, noop, err
		}
		store, err := storage.NewSQLStore(client, cfg.Storage.StateTTL)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		return store, closeDB, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// prepareSchema runs goose in dev for postgres. The sqlite file is local-only
// so its table is created on boot.
func prepareSchema(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg.Storage.Driver == enums.StorageDriverSQLite {
		return client.DB().WithContext(ctx).AutoMigrate(&models.SessionState{})
	}
	return migrate.MaybeRunDev(ctx, cfg, logg, client)
}
