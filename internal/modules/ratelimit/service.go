// README: Rate limit service: fail-open wrapper around a Limiter.
package ratelimit

import (
	"context"

	"go.uber.org/zap"
)

type Service struct {
	limiter Limiter
	log     *zap.Logger
}

func NewService(limiter Limiter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{limiter: limiter, log: log}
}

// Allow counts a request for key. Store failures let the request through.
func (s *Service) Allow(ctx context.Context, key string) Decision {
	d, err := s.limiter.Take(ctx, key)
	if err != nil {
		s.log.Warn("rate limiter unavailable, allowing request", zap.String("key", key), zap.Error(err))
		return Decision{Allowed: true, Limit: d.Limit}
	}
	if !d.Allowed {
		s.log.Info("rate limit exceeded", zap.String("key", key), zap.Duration("retry_after", d.RetryAfter))
	}
	return d
}
