package ratelimit

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_Take(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := newMemoryStore(Policy{Requests: 3, Window: time.Minute}, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := s.Take(ctx, "10.0.0.1")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: %+v, %v", i+1, d, err)
		}
		if d.Remaining != 2-i {
			t.Errorf("request %d remaining = %d", i+1, d.Remaining)
		}
	}

	clock.Advance(20 * time.Second)
	d, _ := s.Take(ctx, "10.0.0.1")
	if d.Allowed {
		t.Fatalf("4th request should be limited")
	}
	if d.RetryAfter != 40*time.Second {
		t.Errorf("retry after = %v, want 40s", d.RetryAfter)
	}

	if d, _ := s.Take(ctx, "10.0.0.2"); !d.Allowed {
		t.Errorf("other key should be independent")
	}

	clock.Advance(40 * time.Second)
	if d, _ := s.Take(ctx, "10.0.0.1"); !d.Allowed || d.Remaining != 2 {
		t.Errorf("after window = %+v", d)
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	s := newMemoryStore(Policy{Requests: 1, Window: time.Minute}, clock.Now)
	_, _ = s.Take(context.Background(), "a")

	clock.Advance(2 * time.Hour)
	s.cleanup()
	if len(s.buckets) != 0 {
		t.Fatalf("buckets = %d, want 0", len(s.buckets))
	}
}

func TestNewMemoryStore_InvalidPolicy(t *testing.T) {
	if _, err := NewMemoryStore(Policy{Requests: 0, Window: time.Second}); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("err = %v", err)
	}
	s, err := NewMemoryStore(Policy{Requests: 1, Window: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	s.Close()
}

type failingLimiter struct{}

func (failingLimiter) Take(ctx context.Context, key string) (Decision, error) {
	return Decision{}, errors.New("connection refused")
}

func TestService_FailsOpen(t *testing.T) {
	svc := NewService(failingLimiter{}, nil)
	if d := svc.Allow(context.Background(), "k"); !d.Allowed {
		t.Fatalf("store error must not block: %+v", d)
	}
}

func TestService_Denies(t *testing.T) {
	s := newMemoryStore(Policy{Requests: 1, Window: time.Minute}, time.Now)
	svc := NewService(s, nil)
	ctx := context.Background()
	if !svc.Allow(ctx, "k").Allowed {
		t.Fatal("first request should pass")
	}
	if svc.Allow(ctx, "k").Allowed {
		t.Fatal("second request should be limited")
	}
}

func TestRedisStore_Integration(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("MOTOHUB_TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("MOTOHUB_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()

	key := "test-" + time.Now().UTC().Format("150405.000000")
	t.Cleanup(func() { client.Del(context.Background(), redisKeyPrefix+key) })

	s, err := NewRedisStore(client, Policy{Requests: 2, Window: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		d, err := s.Take(ctx, key)
		if err != nil || !d.Allowed {
			t.Fatalf("request %d: %+v, %v", i+1, d, err)
		}
	}
	d, err := s.Take(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if d.Allowed || d.RetryAfter <= 0 || d.RetryAfter > 5*time.Second {
		t.Fatalf("third request = %+v", d)
	}
}
