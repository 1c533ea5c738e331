// README: Bench cases for the pricing API plus Postgres/Redis reachability and a quote throughput probe.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"motohub/internal/infra"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

var delhiCommuter = map[string]any{
	"bike": map[string]any{
		"name":        "Bench 350",
		"priceInr":    200000,
		"engineCc":    350,
		"mileageKmpl": 35,
		"fuelTankL":   13,
	},
	"city": "delhi",
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "Profile store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Rate limit backend reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "Embedded goose migrations",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				if err := infra.MigrateUp(ctx, r.db, zap.NewNop()); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				v, err := infra.MigrationVersion(ctx, r.db)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("version=%d", v)}
			},
		},
		{
			Name:  "Migration: city_profiles exists",
			Focus: "Schema present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
					"city_profiles",
				).Scan(&exists)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: StatusPending, Note: "run migrations first"}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCaseMethod("API: ping", http.MethodGet, base+"/api/ping", nil, []int{200}, nil),
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: unknown route -> 404", http.MethodGet, base+"/api/does-not-exist", nil, []int{404}, nil),
		httpCaseMethod("Pricing: list cities", http.MethodGet, base+"/api/pricing/cities", nil, []int{200}, nil),

		httpCase("Pricing: on-road Delhi", base+"/api/pricing/on-road", delhiCommuter, []int{200}, []int{429}),
		httpCase("Pricing: on-road zero price -> 400", base+"/api/pricing/on-road", map[string]any{
			"bike": map[string]any{"priceInr": 0},
			"city": "delhi",
		}, []int{400}, []int{429}),
		httpCase("Pricing: on-road unknown city falls back", base+"/api/pricing/on-road", map[string]any{
			"bike": map[string]any{"priceInr": 99000, "engineCc": 110},
			"city": "atlantis",
		}, []int{200}, []int{429}),
		httpCase("Pricing: malformed body -> 400", base+"/api/pricing/on-road", "not an object", []int{400}, []int{429}),

		httpCase("Ownership: defaults", base+"/api/pricing/ownership", delhiCommuter, []int{200}, []int{429}),
		httpCase("Ownership: cash purchase", base+"/api/pricing/ownership", map[string]any{
			"bike":            delhiCommuter["bike"],
			"city":            "mumbai",
			"downPaymentPct":  100,
			"usageKmPerMonth": 1200,
			"years":           3,
		}, []int{200}, []int{429}),

		httpCase("EMI: defaults", base+"/api/pricing/emi", map[string]any{"principalInr": 150000}, []int{200}, []int{429}),
		httpCase("EMI: zero principal -> 400", base+"/api/pricing/emi", map[string]any{"principalInr": 0}, []int{400}, []int{429}),

		{
			Name:  "Rate limit: burst is throttled",
			Focus: "429 once the window budget is spent",
			Run: func(ctx context.Context, r *Runner) Result {
				return burst(ctx, r, base+"/api/pricing/emi", map[string]any{"principalInr": 50000})
			},
		},
		{
			Name:  "Perf: on-road quote throughput",
			Focus: "Sustained quote requests",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/pricing/on-road", delhiCommuter)
			},
		},
	}
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			status, latency, err := r.do(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: classify(status, okStatuses, pendingStatuses), Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, 0, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode, time.Since(start), nil
}

// classify maps a status code onto a result; pending covers throttled runs.
func classify(status int, ok, pending []int) string {
	switch {
	case slices.Contains(ok, status):
		return StatusPass
	case slices.Contains(pending, status):
		return StatusPending
	default:
		return StatusFail
	}
}

// burst fires Concurrency*5 requests at once and expects at least one 429.
// A limiter configured above the burst size reports PENDING instead of FAIL.
func burst(ctx context.Context, r *Runner, url string, payload any) Result {
	total := r.cfg.Concurrency * 5
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		ok, limit int
	)
	sem := make(chan struct{}, r.cfg.Concurrency)
	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			status, _, err := r.do(ctx, http.MethodPost, url, payload)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			switch status {
			case http.StatusOK:
				ok++
			case http.StatusTooManyRequests:
				limit++
			}
		}()
	}
	wg.Wait()

	note := fmt.Sprintf("ok=%d limited=%d of %d", ok, limit, total)
	switch {
	case ok+limit == 0:
		return Result{Status: StatusFail, Note: note}
	case limit == 0:
		return Result{Status: StatusPending, Note: note}
	default:
		return Result{Status: StatusPass, Note: note}
	}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var (
		mu                       sync.Mutex
		wg                       sync.WaitGroup
		count, limited, errCount int64
	)

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, err := r.do(ctx, http.MethodPost, url, payload)
				mu.Lock()
				switch {
				case err != nil:
					errCount++
				case status == http.StatusTooManyRequests:
					limited++
				default:
					count++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 && limited == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	note := fmt.Sprintf("rps=%.1f limited=%d errors=%d", rps, limited, errCount)
	if count == 0 {
		return Result{Status: StatusPending, Note: note}
	}
	return Result{Status: StatusPass, Note: note}
}
