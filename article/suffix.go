package article

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ZaguanLabs/wortlex"
)

// suffixRule maps a noun ending to its gender marker.
type suffixRule struct {
	suffix string
	gender string
}

// suffixRules are checked longest first. They cover endings with very few
// exceptions; anything else gets no answer.
var suffixRules = []suffixRule{
	{"schaft", "f"},
	{"ismus", "m"},
	{"chen", "n"},
	{"heit", "f"},
	{"keit", "f"},
	{"lein", "n"},
	{"ling", "m"},
	{"ment", "n"},
	{"tion", "f"},
	{"sion", "f"},
	{"ung", "f"},
	{"tät", "f"},
	{"tum", "n"},
	{"ist", "m"},
	{"ur", "f"},
}

// SuffixDetector guesses the article of capitalized words from their ending.
// It needs no network and is meant as the last link of a Chain.
type SuffixDetector struct{}

// NewSuffixDetector creates a new suffix detector.
func NewSuffixDetector() *SuffixDetector {
	return &SuffixDetector{}
}

// DetectArticle implements Detector.
func (SuffixDetector) DetectArticle(_ context.Context, word string) (*wortlex.ArticleInfo, error) {
	word = stripArticle(word)
	if strings.ContainsRune(word, ' ') {
		return nil, nil
	}

	first, _ := utf8.DecodeRuneInString(word)
	if !unicode.IsUpper(first) {
		return nil, nil
	}

	lower := strings.ToLower(word)
	for _, rule := range suffixRules {
		// The ending alone is not a word: "Ur" is not an "-ur" noun.
		if strings.HasSuffix(lower, rule.suffix) && len(lower) > len(rule.suffix)+1 {
			return nounInfo(rule.gender, "suffix"), nil
		}
	}
	return nil, nil
}

// Verify SuffixDetector implements Detector
var _ Detector = (*SuffixDetector)(nil)
