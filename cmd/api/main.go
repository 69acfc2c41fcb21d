package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adithyanarayan/stockline-backend/api/routes"
	"github.com/adithyanarayan/stockline-backend/internal/auth"
	"github.com/adithyanarayan/stockline-backend/internal/cart"
	"github.com/adithyanarayan/stockline-backend/internal/catalog"
	"github.com/adithyanarayan/stockline-backend/internal/directory"
	"github.com/adithyanarayan/stockline-backend/internal/orders"
	sessionregistry "github.com/adithyanarayan/stockline-backend/internal/session"
	"github.com/adithyanarayan/stockline-backend/internal/stock"
	"github.com/adithyanarayan/stockline-backend/internal/users"
	"github.com/adithyanarayan/stockline-backend/pkg/auth/session"
	"github.com/adithyanarayan/stockline-backend/pkg/config"
	"github.com/adithyanarayan/stockline-backend/pkg/db"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
	"github.com/adithyanarayan/stockline-backend/pkg/metrics"
	"github.com/adithyanarayan/stockline-backend/pkg/migrate"
	"github.com/adithyanarayan/stockline-backend/pkg/outbox"
	"github.com/adithyanarayan/stockline-backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := sessionregistry.NewRegistry()
	cartManager := cart.NewManager()
	registry.Subscribe(cartManager)

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	outboxRepo := outbox.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, sessionManager, registry, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartManager, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		ordersRepo,
		catalogRepo,
		usersRepo,
		cartManager,
		stock.NewGuard(catalogRepo),
		outbox.NewService(outboxRepo, logg),
		dbClient,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	directoryService, err := directory.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create directory service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

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

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			SessionManager:   sessionManager,
			AuthService:      authService,
			CatalogService:   catalogService,
			CartService:      cartService,
			OrdersService:    ordersService,
			DirectoryService: directoryService,
			Metrics:          httpMetrics,
			MetricsGatherer:  promRegistry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
