package wortlex

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds the provider calls of a LookupBatch.
const DefaultBatchConcurrency = 4

// BatchResult is the outcome of one word of a LookupBatch.
type BatchResult struct {
	Word   string
	Result *LookupResult
	Err    error
}

// LookupBatch looks up words in parallel with the default options.
// Words that normalize to the same text are resolved once. Results keep the
// order of words; a failing word does not stop the others.
func (d *Dictionary) LookupBatch(ctx context.Context, words []string, direction Direction, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	// Deduplicate words by normalized text first
	unique := make(map[string]int)
	var order []string
	for _, w := range words {
		n := NormalizeText(w)
		if _, exists := unique[n]; !exists {
			unique[n] = len(order)
			order = append(order, w)
		}
	}

	resolved := make([]BatchResult, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, w := range order {
		g.Go(func() error {
			res, err := d.Lookup(gctx, w, direction)
			resolved[i] = BatchResult{Word: w, Result: res, Err: err}
			return nil
		})
	}
	g.Wait()

	results := make([]BatchResult, len(words))
	for i, w := range words {
		r := resolved[unique[NormalizeText(w)]]
		r.Word = w
		results[i] = r
	}
	return results
}
