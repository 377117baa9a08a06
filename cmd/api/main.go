package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/swarnimjewels/storefront-backend/api/controllers"
	"github.com/swarnimjewels/storefront-backend/api/routes"
	"github.com/swarnimjewels/storefront-backend/internal/catalog"
	"github.com/swarnimjewels/storefront-backend/internal/coupons"
	"github.com/swarnimjewels/storefront-backend/internal/dispatch"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/internal/users"
	"github.com/swarnimjewels/storefront-backend/pkg/config"
	"github.com/swarnimjewels/storefront-backend/pkg/db"
	"github.com/swarnimjewels/storefront-backend/pkg/identifier"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
	"github.com/swarnimjewels/storefront-backend/pkg/metrics"
	"github.com/swarnimjewels/storefront-backend/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	// The snapshot cache is optional; without redis configured the catalog
	// just assembles every read from the database.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	actionMetrics := metrics.NewActionMetrics(registry)

	ids := identifier.New()

	usersService, err := users.NewService(users.ServiceParams{
		Repo:         users.NewRepository(dbClient.DB()),
		IDs:          ids,
		CartMaxBytes: cfg.Cart.MaxBytes,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo: orders.NewRepository(dbClient.DB()),
		IDs:  ids,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	couponsRepo := coupons.NewRepository(dbClient.DB())
	couponsService, err := coupons.NewService(coupons.ServiceParams{Repo: couponsRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create coupons service", err)
		os.Exit(1)
	}

	catalogParams := catalog.ServiceParams{
		Repo:     catalog.NewRepository(dbClient.DB()),
		Coupons:  couponsRepo,
		Logger:   logg,
		CacheTTL: cfg.Snapshot.CacheTTL,
	}
	if redisClient != nil {
		catalogParams.Cache = redisClient
	}
	catalogService, err := catalog.NewService(catalogParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	dispatcher, err := dispatch.New(dispatch.Params{
		Users:   usersService,
		Orders:  ordersService,
		Catalog: catalogService,
		Coupons: couponsService,
		Metrics: actionMetrics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dispatcher", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	var cachePinger controllers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Cache:      cachePinger,
			Catalog:    catalogService,
			Dispatcher: dispatcher,
			Registry:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
