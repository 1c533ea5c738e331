// README: Smoke and load runner for a deployed motohub API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	flag "github.com/spf13/pflag"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	s := summarize(results)
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", s.pass, s.fail, s.pending, s.skipped)

	if s.failed(cfg.Strict) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"http://localhost:5000"`
	DSN            string        `env:"DB_DSN"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	ApplyMigration bool          `env:"APPLY_MIGRATION" envDefault:"false"`
	Strict         bool          `env:"STRICT" envDefault:"false"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	Concurrency    int           `env:"CONCURRENCY" envDefault:"20"`
	Duration       time.Duration `env:"DURATION" envDefault:"10s"`
}

// loadConfig reads MOTOHUB_BENCH_* defaults and lets flags override them.
func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "MOTOHUB_BENCH_"}); err != nil {
		return Config{}, fmt.Errorf("bench config: %w", err)
	}

	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	fs.StringVar(&cfg.DSN, "dsn", cfg.DSN, "Postgres DSN (empty skips DB checks)")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address (empty skips Redis checks)")
	fs.BoolVar(&cfg.ApplyMigration, "apply-migration", cfg.ApplyMigration, "Apply embedded migrations before checking tables")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Fail on pending tests")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Total timeout")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrency for perf tests")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Duration for perf tests")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg, nil
}

type summary struct {
	pass, fail, pending, skipped int
}

func summarize(results []Result) summary {
	var s summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.pass++
		case StatusFail:
			s.fail++
		case StatusPending:
			s.pending++
		case StatusSkip:
			s.skipped++
		}
	}
	return s
}

func (s summary) failed(strict bool) bool {
	if s.fail > 0 {
		return true
	}
	return strict && s.pending > 0
}
