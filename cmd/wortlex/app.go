package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ZaguanLabs/wortlex"
	"github.com/ZaguanLabs/wortlex/article"
	"github.com/ZaguanLabs/wortlex/cache"
	"github.com/ZaguanLabs/wortlex/config"
	"github.com/ZaguanLabs/wortlex/provider"
)

// app holds everything a command needs, built from config.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	dict   *wortlex.Dictionary
	memory *cache.InMemoryCache // nil for the redis backend
	closer func() error
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, closer: func() error { return nil }}

	var c wortlex.Cache
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: cfg.Cache.RedisURL, KeyPrefix: cfg.Cache.KeyPrefix})
		if err != nil {
			return nil, &wortlex.ConfigurationError{Field: "cache.redis_url", Message: "connecting to redis", Cause: err}
		}
		c = rc
		a.closer = rc.Close
	default:
		a.memory = cache.NewInMemoryCache(cache.WithMaxEntries(cfg.Cache.MaxEntries, cfg.Cache.TrimTo))
		c = a.memory
		a.loadSnapshot()
	}

	opts := wortlex.DefaultLookupOptions()
	opts.UILanguage = cfg.Dictionary.UILanguage

	dict, err := wortlex.NewDictionary(p,
		wortlex.WithCache(c),
		wortlex.WithArticleDetector(newDetector(cfg.Article, logger)),
		wortlex.WithLogger(logger),
		wortlex.WithDefaultOptions(opts),
	)
	if err != nil {
		return nil, err
	}
	a.dict = dict

	return a, nil
}

// newProvider builds the remote provider with the configured decorators.
// Rate limiting sits inside retries so every attempt is throttled.
func newProvider(cfg *config.Config) (wortlex.Provider, error) {
	yp, err := provider.NewYandexProvider(provider.YandexConfig{
		APIKey:  cfg.Dictionary.APIKey,
		BaseURL: cfg.Dictionary.BaseURL,
		Timeout: cfg.Dictionary.Timeout,
	})
	if err != nil {
		return nil, err
	}

	var p wortlex.Provider = yp
	if cfg.RateLimit.RequestsPerMinute > 0 {
		p = wortlex.NewRateLimitedProvider(p, wortlex.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.Burst,
		})
	}
	if cfg.Retry.Attempts > 1 {
		p = wortlex.NewRetryingProvider(p, wortlex.RetryConfig{
			Attempts: cfg.Retry.Attempts,
			Delay:    cfg.Retry.Delay,
			MaxDelay: cfg.Retry.MaxDelay,
		})
	}
	return p, nil
}

// newDetector chains the enabled detectors: Wiktionary, LLM, suffix heuristic.
func newDetector(cfg config.ArticleConfig, logger *slog.Logger) wortlex.ArticleDetector {
	var detectors []article.Detector
	if cfg.Wiktionary {
		detectors = append(detectors, article.NewWiktionaryDetector(article.WiktionaryConfig{BaseURL: cfg.WiktionaryURL}))
	}
	if cfg.LLMAPIKey != "" {
		llm, err := article.NewLLMDetector(article.LLMConfig{
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.LLMBaseURL,
		})
		if err != nil {
			logger.Warn("LLM article detector disabled", slog.String("error", err.Error()))
		} else {
			detectors = append(detectors, llm)
		}
	}
	if cfg.Suffix {
		detectors = append(detectors, article.NewSuffixDetector())
	}

	if len(detectors) == 0 {
		return nil
	}
	return article.NewChain(logger, detectors...)
}

// loadSnapshot warms the memory cache. A missing file is not an error.
func (a *app) loadSnapshot() {
	path := a.cfg.Cache.Snapshot
	if path == "" {
		return
	}
	res, err := cache.ImportFromFile(a.memory, path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.logger.Warn("cache snapshot not loaded", slog.String("path", path), slog.String("error", err.Error()))
		}
		return
	}
	a.logger.Info("cache snapshot loaded",
		slog.String("path", path),
		slog.Int("imported", res.Imported),
		slog.Int("skipped", res.Skipped))
}

// saveSnapshot writes the memory cache to path.
func (a *app) saveSnapshot(path string) error {
	if a.memory == nil {
		return fmt.Errorf("cache backend %q does not support snapshots", a.cfg.Cache.Backend)
	}
	return cache.ExportToFile(a.memory, path, map[string]string{
		"version": wortlex.FullVersion(),
	})
}

func (a *app) Close() error {
	if a.memory != nil && a.cfg.Cache.Snapshot != "" {
		if err := a.saveSnapshot(a.cfg.Cache.Snapshot); err != nil {
			a.logger.Warn("cache snapshot not saved", slog.String("error", err.Error()))
		}
	}
	return a.closer()
}
