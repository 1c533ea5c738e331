// README: Config loader: MOTOHUB_* environment with defaults for HTTP, DB, Redis, rate limiting, pricing and logging.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"

	"motohub/internal/logging"
)

const (
	envPrefix       = "MOTOHUB_"
	defaultHTTPAddr = ":5000"
)

type HTTPConfig struct {
	Addr            string        `env:"ADDR"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DBConfig struct {
	DSN            string `env:"DSN"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type RateLimitConfig struct {
	Requests int           `env:"REQUESTS" envDefault:"60"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
}

type PricingConfig struct {
	ProfilesFile string `env:"PROFILES_FILE"`
	DefaultCity  string `env:"DEFAULT_CITY"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Format      string `env:"FORMAT" envDefault:"json"`
	Output      string `env:"OUTPUT" envDefault:"stderr"`
	Development bool   `env:"DEVELOPMENT" envDefault:"false"`
}

type Config struct {
	HTTP      HTTPConfig      `envPrefix:"HTTP_"`
	DB        DBConfig        `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Pricing   PricingConfig   `envPrefix:"PRICING_"`
	Log       LogConfig       `envPrefix:"LOG_"`
}

// platform carries unprefixed variables set by hosting environments.
type platform struct {
	Port string `env:"PORT"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	var p platform
	if err := env.Parse(&p); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = defaultHTTPAddr
		if port := strings.TrimSpace(p.Port); port != "" {
			cfg.HTTP.Addr = ":" + port
		}
	}
	cfg.HTTP.AllowedOrigins = trimAll(cfg.HTTP.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.RateLimit.Requests <= 0 {
		errs = append(errs, fmt.Errorf("%sRATE_LIMIT_REQUESTS must be positive", envPrefix))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Errorf("%sRATE_LIMIT_WINDOW must be positive", envPrefix))
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%sHTTP_SHUTDOWN_TIMEOUT must be positive", envPrefix))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%sLOG_FORMAT must be json or console", envPrefix))
	}
	return errors.Join(errs...)
}

func (c Config) Logging() logging.Config {
	return logging.Config{
		Level:       c.Log.Level,
		Format:      c.Log.Format,
		Output:      c.Log.Output,
		Development: c.Log.Development,
	}
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
