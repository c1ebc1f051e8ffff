package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/luckbank/luckbank-backend/api/routes"
	"github.com/luckbank/luckbank-backend/internal/accounts"
	"github.com/luckbank/luckbank-backend/internal/addresses"
	"github.com/luckbank/luckbank-backend/internal/auth"
	"github.com/luckbank/luckbank-backend/internal/documents"
	"github.com/luckbank/luckbank-backend/internal/users"
	"github.com/luckbank/luckbank-backend/pkg/auth/revocation"
	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/db"
	"github.com/luckbank/luckbank-backend/pkg/logger"
	"github.com/luckbank/luckbank-backend/pkg/metrics"
	"github.com/luckbank/luckbank-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.Mongo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mongo", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			logg.Error(context.Background(), "error closing mongo", err)
		}
	}()

	if err := dbClient.EnsureIndexes(context.Background(), logg); err != nil {
		logg.Error(context.Background(), "failed to ensure indexes", err)
		os.Exit(1)
	}

	// Token revocation falls back to an in-process store when redis is not
	// configured; revoked sessions then do not survive a restart.
	var denylist revocation.Store = revocation.NewMemory()
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		denylist = revocation.NewRedis(redisClient)
	} else {
		logg.Warn(context.Background(), "redis not configured, using in-memory token denylist")
	}

	addressService, err := addresses.NewService(addresses.ServiceParams{
		Repo: addresses.NewRepository(dbClient),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	documentService, err := documents.NewService(documents.ServiceParams{
		Repo: documents.NewRepository(dbClient),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create document service", err)
		os.Exit(1)
	}

	accountService, err := accounts.NewService(accounts.ServiceParams{
		Repo: accounts.NewRepository(dbClient),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient)
	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		Addresses:      addressService,
		Documents:      documentService,
		Accounts:       accountService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		Denylist:  denylist,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			Denylist:    denylist,
			HTTPMetrics: httpMetrics,
			Registry:    registry,

			AuthService:     authService,
			UserService:     userService,
			AddressService:  addressService,
			DocumentService: documentService,
			AccountService:  accountService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
