package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecomarket/storefront/api/routes"
	"github.com/ecomarket/storefront/internal/cart"
	"github.com/ecomarket/storefront/internal/checkout"
	"github.com/ecomarket/storefront/internal/session"
	"github.com/ecomarket/storefront/pkg/config"
	"github.com/ecomarket/storefront/pkg/db"
	"github.com/ecomarket/storefront/pkg/env"
	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/metrics"
	"github.com/ecomarket/storefront/pkg/redis"
	"github.com/ecomarket/storefront/pkg/security"
	"github.com/ecomarket/storefront/pkg/upstream"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var store kv.Store
	var storePinger kv.Pinger
	var redisClient *redis.Client

	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		store = redisClient
		storePinger = redisClient
	default:
		dbClient, err := db.New(context.Background(), cfg.Storage)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap storage database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing storage database", err)
			}
		}()

		kvStore := db.NewKVStore(dbClient)
		if cfg.Storage.AutoMigrate {
			if err := kvStore.AutoMigrate(); err != nil {
				logg.Error(context.Background(), "failed to migrate storage records", err)
				os.Exit(1)
			}
		}
		store = kvStore
		storePinger = kvStore
	}

	sealKey, err := cfg.Session.SealKeyBytes()
	if err != nil {
		logg.Error(context.Background(), "invalid session seal key", err)
		os.Exit(1)
	}
	sealer := security.NewSealer(sealKey)

	backend, err := upstream.NewClient(cfg.Upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	carts := cart.NewStore(store, cfg.Storage.TTL, logg)
	sessions := session.NewManager(store, sealer, carts, cfg.Session.TTL(), logg)
	cartService := cart.NewService(carts, logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	checkoutService := checkout.NewService(carts, backend, checkoutMetrics, logg)

	addr := ":" + env.Get("PORT", cfg.App.Port)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			metricsHandler,
			storePinger,
			redisClient,
			backend,
			sessions,
			cartService,
			checkoutService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "gateway stopped unexpectedly", err)
		os.Exit(1)
	}
}
