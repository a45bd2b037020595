package filter

import (
	"strings"

	"github.com/nvoss/dirscout/internal/scanner"
)

// DefaultSimilarityThreshold is the token-overlap ratio above which a
// body is considered a duplicate of a baseline page.
const DefaultSimilarityThreshold = 0.8

// Similarity returns the Jaccard token-overlap similarity of two
// texts: both are split into whitespace-delimited token sets and the
// ratio |A ∩ B| / |A ∪ B| is computed. An empty union yields 0. Pure
// and symmetric.
//
// Many servers answer unknown paths with HTTP 200 and a generic
// landing page or SPA shell, so status codes alone drown real hits in
// false positives. Token-set overlap is a cheap, order-insensitive
// approximation of "same page" that tolerates minor dynamic content
// (timestamps, nonces) without structural HTML parsing.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// BaselineFilter suppresses responses whose body is indistinguishable
// from either the index page or the not-found page captured before the
// scan. With both reference bodies absent it never suppresses, so a
// finding is never falsely dropped.
type BaselineFilter struct {
	baseline  *scanner.Baseline
	threshold float64
}

// NewBaselineFilter creates the soft-404 classifier. threshold <= 0
// selects the default.
func NewBaselineFilter(b *scanner.Baseline, threshold float64) *BaselineFilter {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &BaselineFilter{baseline: b, threshold: threshold}
}

func (f *BaselineFilter) Name() string { return "baseline-similarity" }

func (f *BaselineFilter) ShouldFilter(resp *scanner.Response) bool {
	if f.baseline == nil {
		return false
	}
	if f.baseline.IndexBody != "" && Similarity(resp.Body, f.baseline.IndexBody) > f.threshold {
		return true
	}
	if f.baseline.HasNotFound && f.baseline.NotFoundBody != "" &&
		Similarity(resp.Body, f.baseline.NotFoundBody) > f.threshold {
		return true
	}
	return false
}
