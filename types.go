package wortlex

import (
	"slices"
	"time"
)

const (
	// MaxTextLength is the longest accepted lookup text, in characters.
	MaxTextLength = 100

	// LookupTTL is how long a lookup result stays in the cache.
	LookupTTL = 24 * time.Hour

	// LanguagesTTL is how long the provider's language list stays in the cache.
	LanguagesTTL = 7 * 24 * time.Hour

	// RequestTimeout bounds a single remote provider call.
	RequestTimeout = 10 * time.Second
)

// ResultSource tells where a LookupResult came from.
type ResultSource string

const (
	SourceCache    ResultSource = "cache"
	SourceFallback ResultSource = "fallback"
	SourceRemote   ResultSource = "remote"
)

// LookupOptions holds the per-query provider switches.
type LookupOptions struct {
	UILanguage       string `json:"ui,omitempty"`
	EnableMorphology bool   `json:"morpho,omitempty"`
	EnableExamples   bool   `json:"examples,omitempty"`
	FamilyFilter     bool   `json:"family,omitempty"`
}

// DefaultLookupOptions returns the options used by Dictionary.Lookup.
func DefaultLookupOptions() LookupOptions {
	return LookupOptions{
		UILanguage:     "ru",
		EnableExamples: true,
	}
}

// LookupQuery is a single dictionary request.
type LookupQuery struct {
	Text      string        `json:"text" validate:"required,max=100"`
	Direction Direction     `json:"direction" validate:"required,direction"`
	Options   LookupOptions `json:"options"`
}

// Example is a usage sentence with its optional translation.
type Example struct {
	Original    string `json:"original"`
	Translation string `json:"translation,omitempty"`
}

// Translation is one rendering of a headword in the target language.
type Translation struct {
	Text         string    `json:"text"`
	PartOfSpeech string    `json:"partOfSpeech,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Synonyms     []string  `json:"synonyms"`
	Meanings     []string  `json:"meanings"`
	Examples     []Example `json:"examples"`
}

// Definition groups the translations of one headword reading.
type Definition struct {
	Word          string        `json:"word"`
	PartOfSpeech  string        `json:"partOfSpeech,omitempty"`
	Transcription string        `json:"transcription,omitempty"`
	Translations  []Translation `json:"translations"`
}

// ArticleInfo describes the grammatical gender of a German noun.
type ArticleInfo struct {
	IsNoun  bool   `json:"isNoun"`
	Article string `json:"article,omitempty"` // der, die or das
	Gender  string `json:"gender,omitempty"`  // m, f or n
	Source  string `json:"source,omitempty"`  // detector that produced it
}

// LookupResult is the normalized answer to a LookupQuery.
type LookupResult struct {
	Word          string       `json:"word"`
	Direction     Direction    `json:"direction"`
	Definitions   []Definition `json:"definitions"`
	HasResults    bool         `json:"hasResults"`
	GermanArticle *ArticleInfo `json:"germanArticle,omitempty"`
	Source        ResultSource `json:"source,omitempty"`
}

// Clone returns a deep copy of r, so callers may modify their result freely.
func (r *LookupResult) Clone() *LookupResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.GermanArticle != nil {
		article := *r.GermanArticle
		c.GermanArticle = &article
	}
	if r.Definitions != nil {
		c.Definitions = make([]Definition, len(r.Definitions))
		for i, def := range r.Definitions {
			c.Definitions[i] = def
			if def.Translations != nil {
				c.Definitions[i].Translations = make([]Translation, len(def.Translations))
				for j, tr := range def.Translations {
					tr.Synonyms = slices.Clone(tr.Synonyms)
					tr.Meanings = slices.Clone(tr.Meanings)
					tr.Examples = slices.Clone(tr.Examples)
					c.Definitions[i].Translations[j] = tr
				}
			}
		}
	}
	return &c
}

// CacheStats reports cache occupancy and how often it answered a query.
type CacheStats struct {
	Size      int   `json:"size"`
	TotalHits int64 `json:"totalHits"`
}

// definiteArticles maps each German definite article to its gender marker.
var definiteArticles = map[string]string{
	"der": "m",
	"die": "f",
	"das": "n",
}

// IsDefiniteArticle reports whether a is one of der, die, das.
func IsDefiniteArticle(a string) bool {
	_, ok := definiteArticles[a]
	return ok
}

// ArticleForGender returns the definite article for a gender marker (m, f, n).
func ArticleForGender(gender string) (string, bool) {
	for article, g := range definiteArticles {
		if g == gender {
			return article, true
		}
	}
	return "", false
}

// GenderForArticle returns the gender marker of a definite article.
func GenderForArticle(article string) string {
	return definiteArticles[article]
}
