package wortlex

import (
	"strconv"
	"strings"
)

// LanguagesCacheKey is the cache key of the provider's language list.
const LanguagesCacheKey = "langs"

// NormalizeText trims and lower-cases text for cache and fallback keys.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CacheKey builds the cache key for a lookup: normalized text, direction and options.
func CacheKey(text string, direction Direction, opts LookupOptions) string {
	return "lookup:" + string(direction) + ":" + opts.key() + ":" + NormalizeText(text)
}

// key serializes the options deterministically.
func (o LookupOptions) key() string {
	var b strings.Builder
	b.WriteString("ui=")
	b.WriteString(o.UILanguage)
	b.WriteString(",m=")
	b.WriteString(strconv.FormatBool(o.EnableMorphology))
	b.WriteString(",e=")
	b.WriteString(strconv.FormatBool(o.EnableExamples))
	b.WriteString(",f=")
	b.WriteString(strconv.FormatBool(o.FamilyFilter))
	return b.String()
}
