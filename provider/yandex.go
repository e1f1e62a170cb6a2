package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ZaguanLabs/wortlex"
	"github.com/go-resty/resty/v2"
)

// Lookup flags understood by the dictionary API.
const (
	flagFamily   = 0x1
	flagShortPos = 0x2
	flagMorpho   = 0x4
)

// YandexProvider implements Provider against the Yandex Dictionary API.
type YandexProvider struct {
	client  *resty.Client
	apiKey  string
	timeout time.Duration
}

// YandexConfig holds configuration for the Yandex provider.
type YandexConfig struct {
	APIKey  string        // API key, required
	BaseURL string        // e.g. "https://dictionary.yandex.net/api/v1/dicservice.json", required
	Timeout time.Duration // Per-call budget (default: 10s)
}

// NewYandexProvider creates a new provider. A missing key or base URL is a
// *wortlex.ConfigurationError.
func NewYandexProvider(cfg YandexConfig) (*YandexProvider, error) {
	if cfg.APIKey == "" {
		return nil, &wortlex.ConfigurationError{Field: "api_key", Message: "dictionary API key is not set"}
	}
	if cfg.BaseURL == "" {
		return nil, &wortlex.ConfigurationError{Field: "base_url", Message: "dictionary base URL is not set"}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = wortlex.RequestTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", wortlex.UserAgent()).
		SetHeader("Accept", "application/json")

	return &YandexProvider{
		client:  client,
		apiKey:  cfg.APIKey,
		timeout: timeout,
	}, nil
}

// Flags converts lookup options to the API's bit-flag integer.
// Short part-of-speech labels are always requested.
func Flags(opts wortlex.LookupOptions) int {
	flags := flagShortPos
	if opts.FamilyFilter {
		flags |= flagFamily
	}
	if opts.EnableMorphology {
		flags |= flagMorpho
	}
	return flags
}

// Lookup fetches and normalizes the dictionary entry for q.
func (p *YandexProvider) Lookup(ctx context.Context, q LookupQuery) (*wortlex.LookupResult, error) {
	ui := q.Options.UILanguage
	if ui == "" {
		ui = wortlex.DefaultLookupOptions().UILanguage
	}

	body, err := p.get(ctx, "/lookup", map[string]string{
		"key":   p.apiKey,
		"lang":  string(q.Direction),
		"text":  q.Text,
		"ui":    ui,
		"flags": strconv.Itoa(Flags(q.Options)),
	})
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &wortlex.ProviderError{
			Code:    wortlex.CodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: "decoding lookup response",
			Cause:   err,
		}
	}

	return Normalize(q.Text, q.Direction, resp), nil
}

// SupportedLanguages returns the language pairs the API serves, e.g. "de-ru".
func (p *YandexProvider) SupportedLanguages(ctx context.Context) ([]string, error) {
	body, err := p.get(ctx, "/getLangs", map[string]string{"key": p.apiKey})
	if err != nil {
		return nil, err
	}

	var langs []string
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, &wortlex.ProviderError{
			Code:    wortlex.CodeUnknown,
			Status:  http.StatusInternalServerError,
			Message: "decoding language list",
			Cause:   err,
		}
	}
	return langs, nil
}

// get issues a GET bounded by the provider timeout and classifies failures.
func (p *YandexProvider) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	budget := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		// A caller deadline shorter than ours is the one that fires.
		if remaining := time.Until(deadline); remaining < budget {
			budget = remaining.Round(time.Millisecond)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, transportError(ctx, err, budget)
	}

	if res.StatusCode() != http.StatusOK {
		return nil, classifyResponse(res.StatusCode(), res.Body())
	}
	return res.Body(), nil
}

// transportError classifies a failed request. budget is the effective time
// limit: the provider timeout or the caller's earlier deadline.
func transportError(ctx context.Context, err error, budget time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &wortlex.TimeoutError{Timeout: budget, Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &wortlex.NetworkError{Message: "dictionary request failed", Cause: err}
}

// classifyResponse maps a non-200 response to a ProviderError. The API sends
// {"code", "message"}; the HTTP status wins when both are present.
func classifyResponse(status int, body []byte) *wortlex.ProviderError {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		eb.Message = strings.TrimSpace(string(body))
	}
	return wortlex.ClassifyStatus(status, eb.Message)
}

// Verify YandexProvider implements Provider
var _ Provider = (*YandexProvider)(nil)
