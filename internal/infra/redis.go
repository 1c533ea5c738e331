// README: Redis client initialization for the rate limiter, with connect retry.
package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis returns a client that has answered PING.
func NewRedis(ctx context.Context, opts RedisOptions, policy RetryPolicy, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	log.Info("connecting to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	if err := retry(ctx, policy, log, "redis", func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("infra.NewRedis: failed to connect after retries: %w", err)
	}
	log.Info("connected to redis")
	return client, nil
}
