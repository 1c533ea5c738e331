// README: Postgres connection pool initialization using pgxpool, with connect retry.
package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewDB opens a pool and pings it until the retry policy gives up.
func NewDB(ctx context.Context, dsn string, policy RetryPolicy, log *zap.Logger) (*pgxpool.Pool, error) {
	const operation = "infra.NewDB"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse dsn: %w", operation, err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: create pool: %w", operation, err)
	}

	log.Info("connecting to postgres", zap.String("host", cfg.ConnConfig.Host), zap.String("database", cfg.ConnConfig.Database))
	if err := retry(ctx, policy, log, "postgres", func() error {
		return pool.Ping(ctx)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}
	log.Info("connected to postgres")
	return pool, nil
}
