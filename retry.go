package wortlex

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	Attempts uint          // Total attempts including the first call
	Delay    time.Duration // Initial delay between attempts
	MaxDelay time.Duration // Upper bound for the backoff delay
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		MaxDelay: 5 * time.Second,
	}
}

// IsRetryable reports whether a failed provider call may succeed on a second try.
// Key, quota, size and language failures are permanent.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		return true
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code == CodeUnknown && providerErr.Status >= http.StatusInternalServerError
	}

	return false
}

// RetryingProvider wraps a Provider with retry logic. Dictionary never retries
// on its own; wrap the provider explicitly to opt in.
type RetryingProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryingProvider creates a provider that retries retryable failures.
func NewRetryingProvider(provider Provider, cfg RetryConfig) *RetryingProvider {
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}
	return &RetryingProvider{
		provider: provider,
		config:   cfg,
	}
}

func (p *RetryingProvider) options(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(p.config.Attempts),
		retry.Delay(p.config.Delay),
		retry.MaxDelay(p.config.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsRetryable),
		retry.LastErrorOnly(true),
	}
}

// Lookup implements Provider with retry logic.
func (p *RetryingProvider) Lookup(ctx context.Context, q LookupQuery) (*LookupResult, error) {
	var res *LookupResult
	err := retry.Do(func() error {
		var err error
		res, err = p.provider.Lookup(ctx, q)
		return err
	}, p.options(ctx)...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// SupportedLanguages implements Provider with retry logic.
func (p *RetryingProvider) SupportedLanguages(ctx context.Context) ([]string, error) {
	var langs []string
	err := retry.Do(func() error {
		var err error
		langs, err = p.provider.SupportedLanguages(ctx)
		return err
	}, p.options(ctx)...)
	if err != nil {
		return nil, err
	}
	return langs, nil
}

// Verify RetryingProvider implements Provider
var _ Provider = (*RetryingProvider)(nil)
