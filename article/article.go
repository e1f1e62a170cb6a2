// Package article provides German article detectors for dictionary results.
//
// A detector answers whether a word is a noun and, if so, which definite
// article it takes. A nil *wortlex.ArticleInfo with a nil error means the
// detector has no opinion; the next detector in a Chain is asked.
package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ZaguanLabs/wortlex"
)

// Detector is an alias to the main package interface for convenience.
type Detector = wortlex.ArticleDetector

// Chain asks each detector in turn and returns the first answer.
type Chain struct {
	detectors []Detector
	logger    *slog.Logger
}

// NewChain creates a chain of detectors. nil entries are skipped.
func NewChain(logger *slog.Logger, detectors ...Detector) *Chain {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Chain{logger: logger.With("component", "article")}
	for _, d := range detectors {
		if d != nil {
			c.detectors = append(c.detectors, d)
		}
	}
	return c
}

// DetectArticle implements Detector. Errors from individual detectors are
// only returned when no detector produced an answer.
func (c *Chain) DetectArticle(ctx context.Context, word string) (*wortlex.ArticleInfo, error) {
	var errs []error
	for _, d := range c.detectors {
		info, err := d.DetectArticle(ctx, word)
		if err != nil {
			c.logger.DebugContext(ctx, "detector failed",
				slog.String("detector", fmt.Sprintf("%T", d)),
				slog.String("word", word),
				slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, errors.Join(errs...)
}

// Len returns the number of detectors in the chain.
func (c *Chain) Len() int {
	return len(c.detectors)
}

// nounInfo builds an ArticleInfo for a noun with the given gender marker.
// An unknown or empty gender yields a noun with no article.
func nounInfo(gender, source string) *wortlex.ArticleInfo {
	info := &wortlex.ArticleInfo{IsNoun: true, Source: source}
	if article, ok := wortlex.ArticleForGender(gender); ok {
		info.Article = article
		info.Gender = gender
	}
	return info
}

// stripArticle removes a leading definite article ("das Haus" → "Haus").
func stripArticle(word string) string {
	word = strings.TrimSpace(word)
	if i := strings.IndexByte(word, ' '); i > 0 && wortlex.IsDefiniteArticle(strings.ToLower(word[:i])) {
		return strings.TrimSpace(word[i+1:])
	}
	return word
}

// Verify Chain implements Detector
var _ Detector = (*Chain)(nil)
