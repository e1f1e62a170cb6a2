package wortlex

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// flakyProvider fails with errs in order, then succeeds.
type flakyProvider struct {
	errs  []error
	calls int
}

func (p *flakyProvider) next() error {
	p.calls++
	if p.calls <= len(p.errs) {
		return p.errs[p.calls-1]
	}
	return nil
}

func (p *flakyProvider) Lookup(ctx context.Context, q LookupQuery) (*LookupResult, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	return &LookupResult{Word: q.Text, Definitions: []Definition{}}, nil
}

func (p *flakyProvider) SupportedLanguages(ctx context.Context) ([]string, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	return []string{"de-ru"}, nil
}

func testRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts: 3,
		Delay:    time.Millisecond,
		MaxDelay: 10 * time.Millisecond,
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", &TimeoutError{Timeout: time.Second}, true},
		{"network", &NetworkError{Message: "connection reset"}, true},
		{"wrapped network", fmt.Errorf("lookup: %w", &NetworkError{Message: "eof"}), true},
		{"server error", ClassifyStatus(503, ""), true},
		{"invalid key", ClassifyStatus(401, ""), false},
		{"blocked key", ClassifyStatus(402, ""), false},
		{"daily limit", ClassifyStatus(403, ""), false},
		{"too long", ClassifyStatus(413, ""), false},
		{"language", ClassifyStatus(501, ""), false},
		{"rate limit wait", &ProviderError{Code: CodeUnknown, Status: 429}, false},
		{"validation", &ValidationError{Message: "empty"}, false},
		{"cancelled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", cfg.Attempts)
	}
	if cfg.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", cfg.Delay)
	}
	if cfg.MaxDelay != 5*time.Second {
		t.Errorf("MaxDelay = %v, want 5s", cfg.MaxDelay)
	}
}

func TestRetryingProvider_Success(t *testing.T) {
	inner := &flakyProvider{}
	p := NewRetryingProvider(inner, testRetryConfig())

	res, err := p.Lookup(context.Background(), LookupQuery{Text: "Haus", Direction: DirectionDeRu})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if res.Word != "Haus" {
		t.Errorf("Word = %q", res.Word)
	}
	if inner.calls != 1 {
		t.Errorf("Expected 1 call, got %d", inner.calls)
	}
}

func TestRetryingProvider_RetryableError(t *testing.T) {
	inner := &flakyProvider{errs: []error{
		&NetworkError{Message: "connection refused"},
		&TimeoutError{Timeout: RequestTimeout},
	}}
	p := NewRetryingProvider(inner, testRetryConfig())

	if _, err := p.Lookup(context.Background(), LookupQuery{Text: "Haus", Direction: DirectionDeRu}); err != nil {
		t.Fatalf("Expected success after retries, got: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", inner.calls)
	}
}

func TestRetryingProvider_PermanentError(t *testing.T) {
	inner := &flakyProvider{errs: []error{ClassifyStatus(401, ""), nil}}
	p := NewRetryingProvider(inner, testRetryConfig())

	_, err := p.Lookup(context.Background(), LookupQuery{Text: "Haus", Direction: DirectionDeRu})

	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Code != CodeKeyInvalid {
		t.Fatalf("Expected ERR_KEY_INVALID, got: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("Expected 1 call for permanent error, got %d", inner.calls)
	}
}

func TestRetryingProvider_AttemptsExhausted(t *testing.T) {
	netErr := &NetworkError{Message: "connection refused"}
	inner := &flakyProvider{errs: []error{netErr, netErr, netErr, netErr}}
	p := NewRetryingProvider(inner, testRetryConfig())

	_, err := p.SupportedLanguages(context.Background())

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("Expected the last NetworkError, got: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", inner.calls)
	}
}

func TestRetryingProvider_ZeroAttempts(t *testing.T) {
	inner := &flakyProvider{errs: []error{&NetworkError{Message: "down"}}}
	p := NewRetryingProvider(inner, RetryConfig{})

	if _, err := p.SupportedLanguages(context.Background()); err == nil {
		t.Fatal("Expected error with a single attempt")
	}
	if inner.calls != 1 {
		t.Errorf("Expected 1 call, got %d", inner.calls)
	}
}

func TestRetryingProvider_ContextCancelled(t *testing.T) {
	inner := &flakyProvider{errs: []error{&NetworkError{Message: "down"}, &NetworkError{Message: "down"}}}
	p := NewRetryingProvider(inner, RetryConfig{Attempts: 5, Delay: time.Second, MaxDelay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Lookup(ctx, LookupQuery{Text: "Haus", Direction: DirectionDeRu})
	if err == nil {
		t.Fatal("Expected error")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("retry loop ignored context cancellation")
	}
}
