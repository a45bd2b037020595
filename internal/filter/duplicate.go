package filter

import (
	"sync"

	"github.com/nvoss/dirscout/internal/scanner"
)

// responseKey identifies a response shape by status code and body hash.
type responseKey struct {
	statusCode int
	bodyHash   [16]byte
}

// DuplicateFilter suppresses responses that repeat with the same
// status code and body content. This catches catch-all routes (e.g.
// /app/* always serving the same shell) whose body differs enough from
// the index and 404 baselines to slip past the similarity check.
type DuplicateFilter struct {
	mu        sync.Mutex
	seen      map[responseKey]int
	threshold int
}

// NewDuplicateFilter allows up to threshold identical responses
// through before suppressing the rest. A threshold of 2 means the
// first 2 responses with the same (status, body) pass, then duplicates
// are hidden.
func NewDuplicateFilter(threshold int) *DuplicateFilter {
	if threshold < 1 {
		threshold = 1
	}
	return &DuplicateFilter{
		seen:      make(map[responseKey]int),
		threshold: threshold,
	}
}

func (d *DuplicateFilter) Name() string { return "duplicate" }

func (d *DuplicateFilter) ShouldFilter(resp *scanner.Response) bool {
	key := responseKey{statusCode: resp.StatusCode, bodyHash: resp.BodyHash}

	d.mu.Lock()
	d.seen[key]++
	count := d.seen[key]
	d.mu.Unlock()

	return count > d.threshold
}
