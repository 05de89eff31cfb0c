// @title SaaS Dashboard API
// @version 1.0
// @description Multi-tenant SaaS backend with JWT authentication, user management and tenant subscriptions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/saasdash/dashboard-api/docs"
	"github.com/saasdash/dashboard-api/internal/api"
	"github.com/saasdash/dashboard-api/internal/core/service"
	"github.com/saasdash/dashboard-api/internal/infrastructure/config"
	"github.com/saasdash/dashboard-api/internal/infrastructure/db/mongo"
	"github.com/saasdash/dashboard-api/internal/infrastructure/db/redis"
	"github.com/saasdash/dashboard-api/internal/infrastructure/queue"
	"github.com/saasdash/dashboard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	tenantRepo := mongo.NewTenantRepository(db)
	auditRepo := mongo.NewAuditRepository(db)
	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		tenantRepo.EnsureIndexes,
		auditRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("creating indexes")
		}
	}

	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	authService := service.NewAuthService(userRepo, tokens, dispatcher, log)
	userService := service.NewUserService(userRepo, log)
	tenantService := service.NewTenantService(tenantRepo, userRepo, cfg.BaseDomain, log)

	limiter := redis.NewFixedWindowLimiter(rdb, cfg.RateLimit.Window)

	e := api.NewRouter(api.Dependencies{
		Config:    cfg,
		Log:       log,
		Mongo:     db,
		Redis:     rdb,
		Limiter:   limiter,
		Tokens:    tokens,
		Users:     userRepo,
		Tenants:   tenantRepo,
		Auth:      authService,
		UserSvc:   userService,
		TenantSvc: tenantService,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
