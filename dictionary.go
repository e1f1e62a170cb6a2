package wortlex

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ZaguanLabs/wortlex/cache"
	"golang.org/x/sync/singleflight"
)

// Provider is the interface for remote dictionary backends.
type Provider interface {
	Lookup(ctx context.Context, q LookupQuery) (*LookupResult, error)
	SupportedLanguages(ctx context.Context) ([]string, error)
}

// ArticleDetector determines whether a German word is a noun and its definite article.
// A nil *ArticleInfo with a nil error means the detector has no answer.
type ArticleDetector interface {
	DetectArticle(ctx context.Context, word string) (*ArticleInfo, error)
}

// Cache is the interface for lookup result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Clear() error
	Len() int
}

// Dictionary resolves lookups through cache, fallback table and provider.
type Dictionary struct {
	provider     Provider
	cache        Cache
	fallback     *FallbackTable
	detector     ArticleDetector
	logger       *slog.Logger
	options      LookupOptions
	lookupTTL    time.Duration
	languagesTTL time.Duration

	hits     atomic.Int64
	inflight singleflight.Group
}

// Option is a functional option for configuring the Dictionary.
type Option func(*Dictionary)

// WithCache sets the result cache.
func WithCache(c Cache) Option {
	return func(d *Dictionary) {
		d.cache = c
	}
}

// WithFallbackTable replaces the embedded fallback table. nil disables it.
func WithFallbackTable(table *FallbackTable) Option {
	return func(d *Dictionary) {
		d.fallback = table
	}
}

// WithArticleDetector sets the collaborator used to attach German articles.
func WithArticleDetector(detector ArticleDetector) Option {
	return func(d *Dictionary) {
		d.detector = detector
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dictionary) {
		d.logger = logger
	}
}

// WithDefaultOptions sets the options used by Lookup.
func WithDefaultOptions(opts LookupOptions) Option {
	return func(d *Dictionary) {
		d.options = opts
	}
}

// WithLookupTTL overrides LookupTTL.
func WithLookupTTL(ttl time.Duration) Option {
	return func(d *Dictionary) {
		d.lookupTTL = ttl
	}
}

// WithLanguagesTTL overrides LanguagesTTL.
func WithLanguagesTTL(ttl time.Duration) Option {
	return func(d *Dictionary) {
		d.languagesTTL = ttl
	}
}

// NewDictionary creates a Dictionary backed by provider.
func NewDictionary(provider Provider, opts ...Option) (*Dictionary, error) {
	if provider == nil {
		return nil, &ConfigurationError{Field: "provider", Message: "a dictionary provider is required"}
	}

	d := &Dictionary{
		provider:     provider,
		cache:        cache.NewInMemoryCache(),
		fallback:     DefaultFallbackTable(),
		logger:       slog.New(slog.DiscardHandler),
		options:      DefaultLookupOptions(),
		lookupTTL:    LookupTTL,
		languagesTTL: LanguagesTTL,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.cache == nil {
		return nil, &ConfigurationError{Field: "cache", Message: "a cache is required"}
	}
	d.logger = d.logger.With("component", "dictionary")

	return d, nil
}

// Lookup resolves text in direction with the dictionary's default options.
func (d *Dictionary) Lookup(ctx context.Context, text string, direction Direction) (*LookupResult, error) {
	return d.Query(ctx, LookupQuery{Text: text, Direction: direction, Options: d.options})
}

// Query resolves a fully specified query.
// Order: validation, cache, fallback table (German directions only), provider.
func (d *Dictionary) Query(ctx context.Context, q LookupQuery) (*LookupResult, error) {
	q, err := ValidateQuery(q)
	if err != nil {
		return nil, err
	}
	if q.Options.UILanguage == "" {
		q.Options.UILanguage = d.options.UILanguage
	}

	key := CacheKey(q.Text, q.Direction, q.Options)
	if res, ok := d.cachedResult(key); ok {
		d.logger.DebugContext(ctx, "cache hit", slog.String("key", key))
		return res, nil
	}

	var unreliable *FallbackEntry
	if q.Direction.InvolvesGerman() {
		if entry, ok := d.fallback.Lookup(q.Direction, NormalizeText(q.Text)); ok {
			if entry.IsReliable {
				res := entry.Result(q.Text, q.Direction)
				d.store(ctx, key, res, d.lookupTTL)
				d.logger.DebugContext(ctx, "fallback hit", slog.String("word", q.Text), slog.String("direction", q.Direction.String()))
				return res, nil
			}
			unreliable = &entry
		}
	}

	res, err := d.await(ctx, key, func(fetchCtx context.Context) (any, error) {
		return d.fetch(fetchCtx, key, q)
	})
	if err != nil {
		if unreliable != nil && ctx.Err() == nil {
			d.logger.WarnContext(ctx, "provider failed, serving unreliable fallback",
				slog.String("word", q.Text), slog.String("error", err.Error()))
			return unreliable.Result(q.Text, q.Direction), nil
		}
		return nil, err
	}

	return res.(*LookupResult).Clone(), nil
}

// await joins the in-flight call for key, starting it if needed. The call
// runs detached from ctx so one caller giving up does not fail the others;
// the provider timeout bounds it. Each caller stops waiting when its own ctx ends.
func (d *Dictionary) await(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	start := time.Now()
	ch := d.inflight.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case r := <-ch:
		if r.Shared {
			d.logger.DebugContext(ctx, "joined in-flight call", slog.String("key", key))
		}
		return r.Val, r.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Timeout: deadlineBudget(ctx, start), Cause: ctx.Err()}
		}
		return nil, ctx.Err()
	}
}

// deadlineBudget is the time ctx allowed from start, rounded to milliseconds.
func deadlineBudget(ctx context.Context, start time.Time) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return deadline.Sub(start).Round(time.Millisecond)
}

// fetch calls the provider, enriches and caches the result.
func (d *Dictionary) fetch(ctx context.Context, key string, q LookupQuery) (*LookupResult, error) {
	start := time.Now()
	res, err := d.provider.Lookup(ctx, q)
	if err != nil {
		d.logger.WarnContext(ctx, "provider lookup failed",
			slog.String("word", q.Text),
			slog.String("direction", q.Direction.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	res.Word = q.Text
	res.Direction = q.Direction
	if !q.Options.EnableExamples {
		stripExamples(res)
	}
	res.HasResults = len(res.Definitions) > 0
	res.Source = SourceRemote

	d.attachArticle(ctx, q, res)
	d.store(ctx, key, res, d.lookupTTL)

	d.logger.InfoContext(ctx, "provider lookup",
		slog.String("word", q.Text),
		slog.String("direction", q.Direction.String()),
		slog.Int("definitions", len(res.Definitions)),
		slog.Duration("elapsed", time.Since(start)))

	return res, nil
}

// attachArticle sets GermanArticle only for nouns with a definite article.
func (d *Dictionary) attachArticle(ctx context.Context, q LookupQuery, res *LookupResult) {
	if d.detector == nil || !q.Direction.InvolvesGerman() {
		return
	}

	word := germanWord(q, res)
	if word == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	info, err := d.detector.DetectArticle(ctx, word)
	if err != nil {
		d.logger.DebugContext(ctx, "article detection failed", slog.String("word", word), slog.String("error", err.Error()))
		return
	}
	if info == nil || !info.IsNoun || !IsDefiniteArticle(info.Article) {
		return
	}

	article := *info
	if article.Gender == "" {
		article.Gender = GenderForArticle(article.Article)
	}
	res.GermanArticle = &article
}

// germanWord picks the German side of the lookup: the query text when the
// source is German, otherwise the first German translation.
func germanWord(q LookupQuery, res *LookupResult) string {
	if q.Direction.Source() == "de" {
		return q.Text
	}
	for _, def := range res.Definitions {
		for _, tr := range def.Translations {
			if tr.Text != "" {
				return tr.Text
			}
		}
	}
	return ""
}

func stripExamples(res *LookupResult) {
	for i := range res.Definitions {
		for j := range res.Definitions[i].Translations {
			res.Definitions[i].Translations[j].Examples = []Example{}
		}
	}
}

// SupportedLanguages returns the provider's language pairs, cached for LanguagesTTL.
func (d *Dictionary) SupportedLanguages(ctx context.Context) ([]string, error) {
	if data, ok := d.cache.Get(LanguagesCacheKey); ok {
		var langs []string
		if err := json.Unmarshal(data, &langs); err == nil {
			d.hits.Add(1)
			return langs, nil
		}
	}

	v, err := d.await(ctx, LanguagesCacheKey, func(fetchCtx context.Context) (any, error) {
		langs, err := d.provider.SupportedLanguages(fetchCtx)
		if err != nil {
			return nil, err
		}
		d.store(fetchCtx, LanguagesCacheKey, langs, d.languagesTTL)
		return langs, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]string)), nil
}

// ClearCache drops every cached entry and resets the hit counter.
func (d *Dictionary) ClearCache() error {
	d.hits.Store(0)
	if err := d.cache.Clear(); err != nil {
		return &CacheError{Message: "clearing cache", Cause: err}
	}
	return nil
}

// CacheStats reports the cache size and the number of queries it answered.
func (d *Dictionary) CacheStats() CacheStats {
	return CacheStats{
		Size:      d.cache.Len(),
		TotalHits: d.hits.Load(),
	}
}

func (d *Dictionary) cachedResult(key string) (*LookupResult, bool) {
	data, ok := d.cache.Get(key)
	if !ok {
		return nil, false
	}
	var res LookupResult
	if err := json.Unmarshal(data, &res); err != nil {
		d.logger.Warn("discarding undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	d.hits.Add(1)
	res.Source = SourceCache
	return &res, true
}

// store caches v. Cache failures are logged, never returned.
func (d *Dictionary) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		d.logger.WarnContext(ctx, "encoding cache entry", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := d.cache.Set(key, data, ttl); err != nil {
		d.logger.WarnContext(ctx, "cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
