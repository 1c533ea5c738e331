// README: Exponential backoff for infrastructure connects.
package infra

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryPolicy bounds how long startup keeps retrying a dependency.
type RetryPolicy struct {
	MaxElapsed  time.Duration
	MaxInterval time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxElapsed: time.Minute, MaxInterval: 10 * time.Second}
}

func retry(ctx context.Context, policy RetryPolicy, log *zap.Logger, what string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = policy.MaxElapsed
	b.MaxInterval = policy.MaxInterval

	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn(what+" connection failed, retrying",
			zap.Error(err),
			zap.Duration("next_attempt_in", next),
		)
	})
}
