// Package config loads the client settings from the environment and from
// optional .env files. Every variable is prefixed with IPRO_.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Prefix of every environment variable read by Load.
const Prefix = "IPRO_"

// Config holds the client settings.
type Config struct {
	APIURL    string        `env:"API_URL" envDefault:"http://127.0.0.1:8000"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RateLimit float64       `env:"RATE_LIMIT" envDefault:"0"` // requests per second, 0 for unlimited
	RateBurst int           `env:"RATE_BURST" envDefault:"5"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"` // reference data; 0 disables the cache
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"warn"`
	Account   int64         `env:"ACCOUNT"` // default account, 0 for none
	CPF       string        `env:"CPF"`     // default CPF
	Profile   string        `env:"PROFILE" envDefault:"cliente"`
}

// Load reads files with godotenv, then parses the environment. Missing files
// are ignored; variables already set in the environment win over files.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that the environment parser cannot.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%sAPI_URL: invalid url %q", Prefix, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%sTIMEOUT: must be positive, got %v", Prefix, c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%sRATE_LIMIT: must not be negative, got %v", Prefix, c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		return fmt.Errorf("%sRATE_BURST: must be positive when rate limiting, got %d", Prefix, c.RateBurst)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger returns a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
