package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/api"
	"github.com/spec-kit/auth-service/internal/api/handlers"
	httptransport "github.com/spec-kit/auth-service/internal/api/http"
	httphandlers "github.com/spec-kit/auth-service/internal/api/http/handlers"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/i18n"
	"github.com/spec-kit/auth-service/internal/observability"
	"github.com/spec-kit/auth-service/internal/persistence"
	"github.com/spec-kit/auth-service/internal/ratelimit"
	"github.com/spec-kit/auth-service/internal/repository"
	"github.com/spec-kit/auth-service/internal/service"
	"github.com/spec-kit/auth-service/internal/transport"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	broker, err := transport.Connect(cfg.Broker, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to connect broker", zap.Error(err))
	}

	translator, err := i18n.NewTranslator(cfg.I18n.FallbackLocale)
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	publisher := events.NewNATSPublisher(broker, logger)
	metrics := observability.NewMetrics()

	limiterCfg := ratelimit.Config{
		Window:      cfg.RateLimit.Window(),
		MaxMessages: cfg.RateLimit.MaxMessages,
	}
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Backend == "redis" {
		limiter = ratelimit.NewRedisLimiter(redis.Client, limiterCfg, logger)
	} else {
		limiter = ratelimit.NewMemoryLimiter(limiterCfg)
	}

	authService := service.NewAuthService(cfg.Auth, userRepo, codec, publisher, logger)
	userService := service.NewUserService(cfg.Auth, userRepo)

	routes := api.Routes(handlers.NewAuthHandler(authService), handlers.NewUsersHandler(userService))
	guard := auth.NewGuard(codec, api.PublicPatterns(routes))

	dispatcher := transport.NewDispatcher(limiter, guard, translator, metrics, logger)
	for _, route := range routes {
		dispatcher.Register(route)
	}

	server := transport.NewServer(broker, dispatcher, cfg.App.RequestTimeout(), logger)
	if err := server.Start(); err != nil {
		logger.Fatal("failed to subscribe patterns", zap.Error(err))
	}
	defer server.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	healthHandler := httphandlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, broker)
	httptransport.RegisterRoutes(app, healthHandler)

	go func() {
		if err := app.Listen(cfg.App.HealthAddr()); err != nil {
			logger.Fatal("health listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
