package wortlex

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Maximum requests per minute
	BurstSize         int // Maximum burst size (default: same as RPM)
}

// NewRateLimiter creates a token bucket limiter for cfg.
func NewRateLimiter(cfg RateLimitConfig) *rate.Limiter {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60 // Default: 60 RPM
	}

	burst := cfg.BurstSize
	if burst <= 0 {
		burst = rpm
	}

	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// RateLimitedProvider wraps a Provider with client-side rate limiting, keeping
// a shared API key below the provider's daily quota.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider creates a new rate-limited provider.
func NewRateLimitedProvider(provider Provider, cfg RateLimitConfig) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  NewRateLimiter(cfg),
	}
}

func (p *RateLimitedProvider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return &ProviderError{
			Code:    CodeUnknown,
			Status:  http.StatusTooManyRequests,
			Message: "rate limit wait cancelled",
			Cause:   err,
		}
	}
	return nil
}

// Lookup implements Provider with rate limiting.
func (p *RateLimitedProvider) Lookup(ctx context.Context, q LookupQuery) (*LookupResult, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.provider.Lookup(ctx, q)
}

// SupportedLanguages implements Provider with rate limiting.
func (p *RateLimitedProvider) SupportedLanguages(ctx context.Context) ([]string, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.provider.SupportedLanguages(ctx)
}

// Limiter returns the underlying rate limiter for inspection.
func (p *RateLimitedProvider) Limiter() *rate.Limiter {
	return p.limiter
}

// Verify RateLimitedProvider implements Provider
var _ Provider = (*RateLimitedProvider)(nil)
