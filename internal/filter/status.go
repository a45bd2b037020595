package filter

import "github.com/nvoss/dirscout/internal/scanner"

// StatusFilter includes or excludes responses based on HTTP status
// codes. If include is non-empty, only those codes pass through. If
// exclude is non-empty, those codes are suppressed.
//
// The filter chain only ever sees success (2xx) responses; everything
// else is already a non-finding before classification runs, so the
// codes listed here refine within the success range.
type StatusFilter struct {
	include map[int]struct{}
	exclude map[int]struct{}
}

// NewStatusFilter creates a status code filter.
func NewStatusFilter(include, exclude []int) *StatusFilter {
	f := &StatusFilter{
		include: make(map[int]struct{}, len(include)),
		exclude: make(map[int]struct{}, len(exclude)),
	}
	for _, code := range include {
		f.include[code] = struct{}{}
	}
	for _, code := range exclude {
		f.exclude[code] = struct{}{}
	}
	return f
}

func (f *StatusFilter) Name() string { return "status" }

func (f *StatusFilter) ShouldFilter(resp *scanner.Response) bool {
	if len(f.include) > 0 {
		_, ok := f.include[resp.StatusCode]
		return !ok
	}
	if len(f.exclude) > 0 {
		_, ok := f.exclude[resp.StatusCode]
		return ok
	}
	return false
}
