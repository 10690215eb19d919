package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/complaint-service/internal/api/http"
	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/flash"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	userRepo, complaintRepo := repositories(pg, logger)

	authService := service.NewAuthService(userRepo, cfg.Auth.BcryptCost)
	complaintService := service.NewComplaintService(complaintRepo)

	if cfg.AdminSeed.Enabled() {
		created, err := authService.EnsureAdmin(ctx, cfg.AdminSeed.Name, cfg.AdminSeed.Email, cfg.AdminSeed.Password)
		if err != nil {
			logger.Fatal("failed to seed admin", zap.Error(err))
		}
		logger.Info("admin seed checked", zap.String("email", cfg.AdminSeed.Email), zap.Bool("created", created))
	}

	metrics := observability.NewMetrics("complaint_service")

	flasher := flash.NewFlasher(
		flash.NewRedisStore(redis.Handle(), cfg.Flash.TTL()),
		cfg.Flash.CookieName,
		cfg.Auth.CookieSecure,
		logger,
	)
	sessions := auth.NewSessionManager(auth.SessionOptions{
		Tokens:     auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL()),
		Resolver:   auth.NewSessionResolver(userRepo),
		Revoked:    auth.NewRedisRevocationList(redis.Handle()),
		CookieName: cfg.Auth.CookieName,
		Secure:     cfg.Auth.CookieSecure,
		Logger:     logger,
	})

	// Request values must not alias fasthttp buffers once stored.
	app := fiber.New(fiber.Config{AppName: cfg.App.Name, Immutable: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDependencies(pg, redis)),
		Home:       handlers.NewHomeHandler(flasher),
		Auth:       handlers.NewAuthHandler(authService, sessions, flasher, logger),
		Complaints: handlers.NewComplaintsHandler(complaintService, flasher, logger),
		Sessions:   sessions,
		Flasher:    flasher,
		Guard:      auth.NewGuard(flasher, metrics),
		Metrics:    metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("fiber shutdown", zap.Error(err))
	}
}

// repositories falls back to the in-process store when no database is configured.
func repositories(pg *persistence.Postgres, logger *zap.Logger) (repository.UserRepository, repository.ComplaintRepository) {
	if pool := pg.PoolHandle(); pool != nil {
		return repository.NewUserRepository(pool), repository.NewComplaintRepository(pool)
	}
	logger.Warn("using in-memory repositories; data is lost on restart")
	store := repository.NewMemoryStore()
	return store.Users(), store.Complaints()
}

func healthDependencies(pg *persistence.Postgres, redis *persistence.Redis) map[string]handlers.Pinger {
	deps := map[string]handlers.Pinger{"redis": redis}
	if pg.PoolHandle() != nil {
		deps["postgres"] = pg
	}
	return deps
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
