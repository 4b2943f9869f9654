package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

// Config is the runtime configuration of the server, read from the
// environment.
type Config struct {
	Port string `validate:"required,numeric"`

	VersoURL      string `validate:"omitempty,url"`
	VersoAPIKey   string
	OptimizerMock bool

	ContextURL       string `validate:"required,url"`
	JSONLDBase       string `validate:"required,url"`
	ContextTTL       time.Duration
	OptimizerTimeout time.Duration `validate:"gt=0"`

	DatabaseURL string
	RedisURL    string `validate:"omitempty,url"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json logfmt"`
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	switch strings.ToLower(v) {
	case "":
		return fallback, nil
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("config: %s: invalid boolean %q", key, v)
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

// Load reads and validates the configuration. It does not load .env files;
// callers do that first.
func Load() (Config, error) {
	var err error
	cfg := Config{
		Port:        Get("PORT", "8080"),
		VersoURL:    Get("VERSO_OPTIM_API_URL", ""),
		VersoAPIKey: Get("VERSO_API_KEY", ""),
		ContextURL:  Get("CONTEXT_JSON_URL", ""),
		JSONLDBase:  Get("JSONLD_BASE", "http://localhost:8080/optim"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisURL:    Get("REDIS_URL", ""),
		LogLevel:    strings.ToLower(Get("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(Get("LOG_FORMAT", "text")),
	}

	if cfg.OptimizerMock, err = getBool("OPTIMIZER_MOCK", false); err != nil {
		return Config{}, err
	}
	if cfg.OptimizerTimeout, err = getDuration("OPTIMIZER_TIMEOUT", 120*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ContextTTL, err = getDuration("CONTEXT_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if !cfg.OptimizerMock {
		if cfg.VersoURL == "" {
			return Config{}, errors.New("config: VERSO_OPTIM_API_URL is required")
		}
		if cfg.VersoAPIKey == "" {
			return Config{}, errors.New("config: VERSO_API_KEY is required")
		}
	}

	return cfg, nil
}
