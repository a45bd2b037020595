package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nvoss/dirscout/internal/scanner"
)

// JSONWriter buffers findings and writes them as a JSON array in the
// footer, followed by the stderr summary.
type JSONWriter struct {
	w        io.Writer
	closer   io.Closer
	findings []scanner.Finding
}

// NewJSONWriter creates a JSON output writer.
func NewJSONWriter(outputFile string) (*JSONWriter, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
		closer = f
	}
	return &JSONWriter{w: w, closer: closer}, nil
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteFinding(f *scanner.Finding) error {
	j.findings = append(j.findings, *f)
	return nil
}

func (j *JSONWriter) WriteFooter(stats Stats) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if j.findings == nil {
		j.findings = []scanner.Finding{}
	}
	if err := enc.Encode(j.findings); err != nil {
		return err
	}
	summary := fmt.Sprintf("Total found: %d", stats.Found)
	if stats.Found == 0 {
		summary = "No sensitive files found."
	}
	_, err := fmt.Fprintf(os.Stderr, "\n%s\n", summary)
	return err
}

func (j *JSONWriter) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
