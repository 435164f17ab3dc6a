package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultAPIBaseURL = "https://rickandmortyapi.com/api"

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL     string        `env:"RICKMORTY_API_BASE_URL" envDefault:"https://rickandmortyapi.com/api"`
	Store          string        `env:"RICKMORTY_STORE" envDefault:"sqlite"`
	DBPath         string        `env:"RICKMORTY_DB_PATH" envDefault:"rickmorty.db"`
	RedisURL       string        `env:"RICKMORTY_REDIS_URL"`
	RequestTimeout time.Duration `env:"RICKMORTY_REQUEST_TIMEOUT" envDefault:"10s"`
	LogLevel       string        `env:"RICKMORTY_LOG_LEVEL" envDefault:"info"`
	LogPath        string        `env:"RICKMORTY_LOG_PATH"`
	InlineImages   bool          `env:"RICKMORTY_INLINE_IMAGE_PREVIEW" envDefault:"false"`
}

func LoadFromEnv() (Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses settings from an explicit environment map so callers
// are isolated from the host environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	// Set-but-empty variables fall back to defaults, like unset ones.
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Store == "" {
		cfg.Store = StoreSQLite
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "rickmorty.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("DBPath is required")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("RICKMORTY_REDIS_URL is required when RICKMORTY_STORE=redis")
		}
	default:
		return fmt.Errorf("Store must be sqlite or redis: %s", c.Store)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be positive: %s", c.RequestTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}
