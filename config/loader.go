package config

import (
	"fmt"
	"os"

	"github.com/ZaguanLabs/wortlex"
	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the variable holding the YAML config path.
const PathEnv = "WORTLEX_CONFIG"

// DefaultPath is read when PathEnv is unset and the file exists.
const DefaultPath = "./wortlex.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// A missing API key or base URL is a *wortlex.ConfigurationError.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv(PathEnv)
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, &wortlex.ConfigurationError{Field: "config", Message: "reading " + path, Cause: err}
		}
	} else if explicitPath {
		return nil, &wortlex.ConfigurationError{Field: "config", Message: "opening " + path, Cause: err}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, &wortlex.ConfigurationError{Field: "env", Message: "reading environment", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate performs checks the struct tags cannot express.
func (c *Config) Validate() error {
	if c.Dictionary.APIKey == "" {
		return &wortlex.ConfigurationError{Field: "dictionary.api_key", Message: "DICTIONARY_API_KEY is required"}
	}
	if c.Dictionary.BaseURL == "" {
		return &wortlex.ConfigurationError{Field: "dictionary.base_url", Message: "DICTIONARY_BASE_URL is required"}
	}

	switch c.Cache.Backend {
	case "memory":
		if c.Cache.MaxEntries <= 0 || c.Cache.TrimTo <= 0 || c.Cache.TrimTo > c.Cache.MaxEntries {
			return &wortlex.ConfigurationError{
				Field:   "cache",
				Message: fmt.Sprintf("need 0 < trim_to <= max_entries (got %d, %d)", c.Cache.TrimTo, c.Cache.MaxEntries),
			}
		}
	case "redis":
		if c.Cache.RedisURL == "" {
			return &wortlex.ConfigurationError{Field: "cache.redis_url", Message: "required for the redis backend"}
		}
	default:
		return &wortlex.ConfigurationError{Field: "cache.backend", Message: fmt.Sprintf("unknown backend %q", c.Cache.Backend)}
	}

	if c.Retry.Attempts == 0 {
		return &wortlex.ConfigurationError{Field: "retry.attempts", Message: "must be at least 1"}
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return &wortlex.ConfigurationError{Field: "rate_limit", Message: "must not be negative"}
	}

	return nil
}
