package scanner

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// ErrBaselineUnavailable means the site root could not be fetched with
// a success status. Without a working index page there is no reliable
// sense of what a "non-finding" response looks like, so the scan
// aborts before any probing starts.
var ErrBaselineUnavailable = errors.New("baseline unavailable")

// Baseline holds the reference bodies established once per scan and
// shared read-only by all probes. An empty NotFoundBody with
// HasNotFound false means no reliable 404 baseline exists and the
// classifier has one fewer reference to compare against.
type Baseline struct {
	IndexBody    string
	NotFoundBody string
	HasNotFound  bool
}

// EstablishBaseline fingerprints the target before probing. It fetches
// the site root (which must return 2xx) and up to two random-looking
// nonexistent paths looking for a genuine 404 body. Failure to obtain
// a 404 baseline is not fatal: the scan proceeds with a caution, at
// the cost of a higher false-positive rate.
func EstablishBaseline(ctx context.Context, req *Requester, quiet bool) (*Baseline, error) {
	resp, err := req.Fetch(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: fetching index: %v", ErrBaselineUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: index returned status %d", ErrBaselineUnavailable, resp.StatusCode)
	}
	b := &Baseline{IndexBody: resp.Body}
	if !quiet {
		fmt.Fprintf(os.Stderr, "[+] Index baseline established (status %d, %d bytes)\n",
			resp.StatusCode, len(resp.Body))
	}

	for i := 0; i < 2; i++ {
		probe := randomProbe()
		resp, err := req.Fetch(ctx, probe)
		if err != nil {
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			b.NotFoundBody = resp.Body
			b.HasNotFound = true
			if !quiet {
				fmt.Fprintf(os.Stderr, "[+] Not-found baseline established (%d bytes)\n", len(resp.Body))
			}
			break
		}
	}

	if !b.HasNotFound && !quiet {
		fmt.Fprintf(os.Stderr, "[!] Unable to detect a 404 page — proceeding with caution (higher false-positive rate)\n")
	}
	return b, nil
}

// randomProbe returns a path that is extremely unlikely to exist on
// any real server. Each call yields a differently-named path.
func randomProbe() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return "dirscout_probe_" + hex.EncodeToString(buf)
}
