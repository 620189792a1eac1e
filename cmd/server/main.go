package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/config"
	"github.com/DeepakGowda123/TrustGuardAI/internal/db"
	"github.com/DeepakGowda123/TrustGuardAI/internal/handler"
	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/repository"
	"github.com/DeepakGowda123/TrustGuardAI/internal/repository/memstore"
	"github.com/DeepakGowda123/TrustGuardAI/internal/router"
	"github.com/DeepakGowda123/TrustGuardAI/internal/seed"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		middleware.InitLogger("info", "trustguard")
		middleware.Logger.Fatal().Err(err).Msg("invalid configuration")
	}

	middleware.InitLogger(cfg.LogLevel, "trustguard")
	log := middleware.Component("server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store service.Store
		pool  *pgxpool.Pool
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, middleware.Component("db"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
		pgStore := repository.NewStore(pool)
		if cfg.SeedFile != "" {
			mustSeed(ctx, cfg.SeedFile, pgStore)
		}
		store = pgStore
	default:
		mem := memstore.New()
		mustSeed(ctx, cfg.SeedFile, mem)
		store = mem
	}

	cache := service.NewCacheService(cfg.RedisURL, middleware.Logger)
	defer cache.Close()

	empathy, err := service.NewEmpathyService()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vulnerability profiles")
	}

	rnd := service.NewRandSource()
	catalogSvc := service.NewCatalogService(store, store, cache, middleware.Logger)
	prefSvc := service.NewPreferenceService(store, middleware.Logger)
	adSvc := service.NewAdService(store, store, prefSvc, catalogSvc, empathy, service.NewTrustService(rnd), rnd, middleware.Logger)
	feedbackSvc := service.NewFeedbackService(store, store, prefSvc, catalogSvc, middleware.Logger)
	blocklistSvc := service.NewBlocklistService(store, catalogSvc, cache, middleware.Logger)
	analyticsSvc := service.NewAnalyticsService(store)

	// Workers only matter when there is a shared cache to keep fresh.
	if cache.Client() != nil {
		if pool != nil {
			go service.NewCacheWorker(pool, cache, middleware.Logger).Start(ctx)
		}
		catalogWorker := service.NewCatalogWorker(catalogSvc, cfg.CatalogRefreshInterval, middleware.Logger)
		go catalogWorker.Start(ctx)
		defer catalogWorker.Stop()
	}

	handler.InitMetrics(pool, cache)

	app := fiber.New(fiber.Config{
		AppName:      "TrustGuard AI API",
		ServerHeader: "TrustGuard",
	})

	limits := router.DefaultLimits()
	defer limits.Stop()

	router.Setup(app, &router.Handlers{
		Health:      handler.NewHealthHandler(pool, cache.Client()),
		Ad:          handler.NewAdHandler(adSvc, cfg.RequestTimeout),
		Feedback:    handler.NewFeedbackHandler(feedbackSvc, cfg.RequestTimeout),
		Preferences: handler.NewPreferencesHandler(prefSvc, cfg.RequestTimeout),
		Analytics:   handler.NewAnalyticsHandler(analyticsSvc, cfg.RequestTimeout),
		Blocklist:   handler.NewBlocklistHandler(blocklistSvc, cfg.RequestTimeout),
	}, limits, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("backend", cfg.StoreBackend).
		Bool("cache", cache.Client() != nil).
		Msg("TrustGuard backend starting")

	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Error().Err(err).Msg("server stopped")
		stop()
		os.Exit(1)
	}
}

// mustSeed loads path, or the built-in data when path is empty, into w.
func mustSeed(ctx context.Context, path string, w seed.Writer) {
	log := middleware.Component("seed")
	data, err := seed.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load seed data")
	}
	if err := data.Apply(ctx, w); err != nil {
		log.Fatal().Err(err).Msg("failed to apply seed data")
	}
	log.Info().Int("users", len(data.Users)).Int("ads", len(data.Ads)).Msg("seed data applied")
}
