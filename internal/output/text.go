package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nvoss/dirscout/internal/scanner"
)

// ANSI color codes.
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorDim   = "\033[2m"
)

// TextWriter writes findings as colored text lines.
type TextWriter struct {
	w       io.Writer
	noColor bool
	quiet   bool
}

// NewTextWriter creates a text output writer. If outputFile is empty,
// stdout is used. noColor disables ANSI escape codes.
func NewTextWriter(outputFile string, noColor, quiet bool) (*TextWriter, error) {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
	}
	return &TextWriter{w: w, noColor: noColor, quiet: quiet}, nil
}

func (t *TextWriter) WriteHeader() error {
	if t.quiet {
		return nil
	}
	dim, reset := colorDim, colorReset
	if t.noColor {
		dim, reset = "", ""
	}
	_, err := fmt.Fprintf(t.w, "%sCode      Size  URL%s\n", dim, reset)
	return err
}

func (t *TextWriter) WriteFinding(f *scanner.Finding) error {
	green, reset := colorGreen, colorReset
	if t.noColor {
		green, reset = "", ""
	}
	_, err := fmt.Fprintf(t.w, "%s%3d%s  %8d  %s\n", green, f.Status, reset, f.Size, f.URL)
	return err
}

func (t *TextWriter) WriteFooter(stats Stats) error {
	summary := fmt.Sprintf("Total found: %d", stats.Found)
	if stats.Found == 0 {
		summary = "No sensitive files found."
	}
	_, err := fmt.Fprintf(os.Stderr,
		"\n%s\nProbed: %d | Skipped: %d | Not found: %d | Errors: %d | Duration: %s\n",
		summary,
		stats.TotalProbes,
		stats.Skipped,
		stats.NotFound,
		stats.Errors,
		stats.Duration.Round(time.Millisecond),
	)
	return err
}

func (t *TextWriter) Close() error {
	if closer, ok := t.w.(io.Closer); ok && t.w != os.Stdout {
		return closer.Close()
	}
	return nil
}
