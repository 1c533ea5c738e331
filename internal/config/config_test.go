package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":5000" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 || cfg.HTTP.AllowedOrigins[0] != "*" {
		t.Errorf("origins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown = %v", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.RateLimit.Requests != 60 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Pricing.DefaultCity != "" {
		t.Errorf("default city = %q", cfg.Pricing.DefaultCity)
	}
	if cfg.DB.DSN != "" || cfg.Redis.Addr != "" {
		t.Errorf("db/redis should be optional: %+v %+v", cfg.DB, cfg.Redis)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MOTOHUB_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("MOTOHUB_HTTP_ALLOWED_ORIGINS", "https://motohub.in, http://localhost:5173 ,")
	t.Setenv("MOTOHUB_DB_DSN", "postgres://u:p@localhost:5432/motohub")
	t.Setenv("MOTOHUB_DB_MIGRATE_ON_START", "true")
	t.Setenv("MOTOHUB_REDIS_ADDR", "localhost:6379")
	t.Setenv("MOTOHUB_REDIS_DB", "2")
	t.Setenv("MOTOHUB_RATE_LIMIT_REQUESTS", "5")
	t.Setenv("MOTOHUB_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("MOTOHUB_PRICING_DEFAULT_CITY", "delhi")
	t.Setenv("MOTOHUB_LOG_FORMAT", "console")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if got := strings.Join(cfg.HTTP.AllowedOrigins, "|"); got != "https://motohub.in|http://localhost:5173" {
		t.Errorf("origins = %q", got)
	}
	if !cfg.DB.MigrateOnStart || cfg.Redis.DB != 2 {
		t.Errorf("db/redis = %+v %+v", cfg.DB, cfg.Redis)
	}
	if cfg.RateLimit.Requests != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Pricing.DefaultCity != "delhi" || cfg.Logging().Format != "console" {
		t.Errorf("pricing/log = %+v %+v", cfg.Pricing, cfg.Log)
	}
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8081" {
		t.Errorf("addr = %q, want :8081", cfg.HTTP.Addr)
	}

	t.Setenv("MOTOHUB_HTTP_ADDR", ":7000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Errorf("explicit addr should win, got %q", cfg.HTTP.Addr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{name: "zero requests", key: "MOTOHUB_RATE_LIMIT_REQUESTS", value: "0"},
		{name: "bad window", key: "MOTOHUB_RATE_LIMIT_WINDOW", value: "soon"},
		{name: "bad log format", key: "MOTOHUB_LOG_FORMAT", value: "xml"},
		{name: "bad redis db", key: "MOTOHUB_REDIS_DB", value: "two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
