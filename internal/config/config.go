package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	URL    string `env:"DATABASE_URL" envDefault:"file:recipes.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Config holds every runtime setting of the HTTP service.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	Database DatabaseConfig
	Log      LogConfig

	// Empty keeps sessions in process memory.
	RedisURL string `env:"REDIS_URL"`

	// Allowed CORS origin.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Proxies whose X-Forwarded-For is believed when keying rate limits.
	// Empty trusts none, so the peer address is used.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`

	// General limiter covers every route, the auth one only signup/login.
	RateLimitRPS       float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
	RateLimitAuthRPS   float64 `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst int     `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`
}

// ToolConfig is the subset needed by maintenance commands such as migrate.
type ToolConfig struct {
	Database DatabaseConfig
	Log      LogConfig
}

// Load reads an optional .env file, then parses the environment into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTool is Load for commands that only touch the database.
func LoadTool() (*ToolConfig, error) {
	cfg := &ToolConfig{}
	if err := parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(v any) error {
	// A missing .env file is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(v); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (d DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, d.Driver)
	}
	if d.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if !strings.HasPrefix(c.FrontendURL, "http://") && !strings.HasPrefix(c.FrontendURL, "https://") {
		return fmt.Errorf("FRONTEND_URL must be an http(s) origin, got %q", c.FrontendURL)
	}
	for _, p := range c.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
			}
		}
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}
