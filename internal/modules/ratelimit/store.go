// README: Limiter stores: Redis fixed window shared across instances, in-memory token bucket for single-process runs.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts one request against key.
type Limiter interface {
	Take(ctx context.Context, key string) (Decision, error)
}

const redisKeyPrefix = "motohub:ratelimit:"

// RedisStore is a fixed-window counter: INCR, then EXPIRE when the key is new.
type RedisStore struct {
	client *redis.Client
	policy Policy
}

func NewRedisStore(client *redis.Client, policy Policy) (*RedisStore, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, policy: policy}, nil
}

func (s *RedisStore) Take(ctx context.Context, key string) (Decision, error) {
	redisKey := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("incr %s: %w", redisKey, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, s.policy.Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("expire %s: %w", redisKey, err)
		}
	}

	d := Decision{
		Allowed:   count <= int64(s.policy.Requests),
		Limit:     s.policy.Requests,
		Remaining: max(0, s.policy.Requests-int(count)),
	}
	if d.Allowed {
		return d, nil
	}

	ttl, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return d, fmt.Errorf("pttl %s: %w", redisKey, err)
	}
	if ttl < 0 {
		// Key lost its expiry; restart the window so it cannot block forever.
		if err := s.client.Expire(ctx, redisKey, s.policy.Window).Err(); err != nil {
			return d, fmt.Errorf("expire %s: %w", redisKey, err)
		}
		ttl = s.policy.Window
	}
	d.RetryAfter = ttl
	return d, nil
}

const (
	bucketIdleThreshold = time.Hour
	cleanupInterval     = 30 * time.Minute
)

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryStore keeps a token bucket per key, refilled to capacity once a
// full window has passed. Idle buckets are dropped by a background loop.
type MemoryStore struct {
	mu      sync.Mutex
	policy  Policy
	buckets map[string]*bucket
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryStore(policy Policy) (*MemoryStore, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	s := newMemoryStore(policy, time.Now)
	go s.cleanupLoop()
	return s, nil
}

func newMemoryStore(policy Policy, now func() time.Time) *MemoryStore {
	return &MemoryStore{
		policy:  policy,
		buckets: make(map[string]*bucket),
		now:     now,
		stop:    make(chan struct{}),
	}
}

func (s *MemoryStore) Take(ctx context.Context, key string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: s.policy.Requests, lastRefill: now}
		s.buckets[key] = b
	} else if now.Sub(b.lastRefill) >= s.policy.Window {
		b.tokens = s.policy.Requests
		b.lastRefill = now
	}

	d := Decision{Limit: s.policy.Requests}
	if b.tokens <= 0 {
		d.RetryAfter = s.policy.Window - now.Sub(b.lastRefill)
		return d, nil
	}
	b.tokens--
	d.Allowed = true
	d.Remaining = b.tokens
	return d, nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, b := range s.buckets {
		if now.Sub(b.lastRefill) > max(bucketIdleThreshold, s.policy.Window) {
			delete(s.buckets, key)
		}
	}
}

// Close stops the cleanup loop. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}
