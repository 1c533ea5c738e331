// README: Entry point; loads config, builds the city table, wires services and serves HTTP until signalled.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"motohub/internal/config"
	httptransport "motohub/internal/http"
	"motohub/internal/infra"
	"motohub/internal/logging"
	"motohub/internal/modules/pricing"
	"motohub/internal/modules/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	policy := infra.DefaultRetryPolicy()

	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN, policy, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
		dbPool = pool

		if cfg.DB.MigrateOnStart {
			if err := infra.MigrateUp(ctx, dbPool, logger); err != nil {
				return err
			}
		}
	}

	opts := pricing.TableOptions{
		File:        cfg.Pricing.ProfilesFile,
		DefaultCity: cfg.Pricing.DefaultCity,
	}
	if dbPool != nil {
		opts.Store = pricing.NewStore(dbPool)
	}
	cities, source, err := pricing.LoadCityTable(ctx, opts, logger)
	if err != nil {
		return err
	}
	pricingSvc := pricing.NewService(cities, logger.Named("pricing"))

	limiter, closeLimiter, err := newLimiter(ctx, cfg, policy, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()
	rateLimitSvc := ratelimit.NewService(limiter, logger.Named("ratelimit"))

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:        pricingSvc,
		RateLimit:      rateLimitSvc,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Log:            logger.Named("http"),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MotoHub API listening",
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("profiles", source),
			zap.Int("cities", cities.Len()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newLimiter prefers Redis and falls back to the in-memory store.
func newLimiter(ctx context.Context, cfg config.Config, policy infra.RetryPolicy, logger *zap.Logger) (ratelimit.Limiter, func(), error) {
	rl := ratelimit.Policy{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}

	if cfg.Redis.Addr == "" {
		store, err := ratelimit.NewMemoryStore(rl)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("rate limiter: in-memory", zap.Int("requests", rl.Requests), zap.Duration("window", rl.Window))
		return store, store.Close, nil
	}

	client, err := infra.NewRedis(ctx, infra.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, policy, logger)
	if err != nil {
		return nil, nil, err
	}
	store, err := ratelimit.NewRedisStore(client, rl)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("rate limiter: redis", zap.Int("requests", rl.Requests), zap.Duration("window", rl.Window))
	return store, func() { _ = client.Close() }, nil
}
