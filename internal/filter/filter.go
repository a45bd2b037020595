package filter

import "github.com/nvoss/dirscout/internal/scanner"

// Filter decides whether a successful response should be suppressed
// rather than reported as a finding.
type Filter interface {
	Name() string
	ShouldFilter(resp *scanner.Response) bool
}

// Chain applies multiple filters in order, short-circuiting on the
// first match. It satisfies scanner.Classifier.
type Chain struct {
	filters []Filter
}

// NewChain returns an empty filter chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply runs every filter against the response. Returns true and the
// filter name if the response should be suppressed.
func (c *Chain) Apply(resp *scanner.Response) (bool, string) {
	for _, f := range c.filters {
		if f.ShouldFilter(resp) {
			return true, f.Name()
		}
	}
	return false, ""
}
