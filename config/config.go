// Package config loads wortlex settings from an optional YAML file and the environment.
package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Cache      CacheConfig      `yaml:"cache"`
	Article    ArticleConfig    `yaml:"article"`
	Retry      RetryConfig      `yaml:"retry"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig holds the remote dictionary API settings.
type DictionaryConfig struct {
	APIKey     string        `yaml:"api_key"     env:"DICTIONARY_API_KEY"     env-required:"true"`
	BaseURL    string        `yaml:"base_url"    env:"DICTIONARY_BASE_URL"    env-required:"true"`
	Timeout    time.Duration `yaml:"timeout"     env:"DICTIONARY_TIMEOUT"     env-default:"10s"`
	UILanguage string        `yaml:"ui_language" env:"DICTIONARY_UI_LANGUAGE" env-default:"ru"`
}

// CacheConfig selects and tunes the lookup cache.
type CacheConfig struct {
	Backend    string `yaml:"backend"     env:"CACHE_BACKEND"     env-default:"memory"`
	RedisURL   string `yaml:"redis_url"   env:"CACHE_REDIS_URL"`
	KeyPrefix  string `yaml:"key_prefix"  env:"CACHE_KEY_PREFIX"  env-default:"wortlex:"`
	MaxEntries int    `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"1000"`
	TrimTo     int    `yaml:"trim_to"     env:"CACHE_TRIM_TO"     env-default:"800"`
	Snapshot   string `yaml:"snapshot"    env:"CACHE_SNAPSHOT"`
}

// ArticleConfig enables the German article detectors, tried in the order
// Wiktionary, LLM, suffix heuristic.
type ArticleConfig struct {
	Wiktionary    bool   `yaml:"wiktionary"     env:"ARTICLE_WIKTIONARY"     env-default:"true"`
	WiktionaryURL string `yaml:"wiktionary_url" env:"ARTICLE_WIKTIONARY_URL" env-default:"https://de.wiktionary.org"`
	LLMAPIKey     string `yaml:"llm_api_key"    env:"ARTICLE_LLM_API_KEY"`
	LLMModel      string `yaml:"llm_model"      env:"ARTICLE_LLM_MODEL"      env-default:"openai/gpt-4o-mini"`
	LLMBaseURL    string `yaml:"llm_base_url"   env:"ARTICLE_LLM_BASE_URL"   env-default:"https://openrouter.ai/api/v1"`
	Suffix        bool   `yaml:"suffix"         env:"ARTICLE_SUFFIX"         env-default:"true"`
}

// RetryConfig configures opt-in retries of failed provider calls.
// One attempt means no retry.
type RetryConfig struct {
	Attempts uint          `yaml:"attempts"  env:"RETRY_ATTEMPTS"  env-default:"1"`
	Delay    time.Duration `yaml:"delay"     env:"RETRY_DELAY"     env-default:"500ms"`
	MaxDelay time.Duration `yaml:"max_delay" env:"RETRY_MAX_DELAY" env-default:"5s"`
}

// RateLimitConfig configures client-side throttling. Zero disables it.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"   env-default:"0"`
	Burst             int `yaml:"burst"               env:"RATE_LIMIT_BURST" env-default:"0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
