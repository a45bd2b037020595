package output

import (
	"time"

	"github.com/nvoss/dirscout/internal/scanner"
)

// Stats holds aggregate scan statistics.
type Stats struct {
	TotalProbes int
	Found       int
	Skipped     int
	NotFound    int
	Errors      int
	Duration    time.Duration
}

// Writer is implemented by each output format. WriteFinding is called
// once per confirmed finding; WriteFooter emits the final summary.
type Writer interface {
	WriteHeader() error
	WriteFinding(f *scanner.Finding) error
	WriteFooter(stats Stats) error
	Close() error
}
