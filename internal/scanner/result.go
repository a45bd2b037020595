package scanner

import "context"

// Response holds one completed HTTP exchange. The body is lower-cased
// by the Requester so similarity comparison is case-insensitive.
type Response struct {
	StatusCode int
	Body       string
	BodyHash   [16]byte // MD5 of the lower-cased body
	URL        string
}

// Finding records a confirmed hit: a probed path whose response is a
// real page rather than a baseline look-alike. Immutable once created.
type Finding struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Status int    `json:"status"`
	Size   int64  `json:"size"`
}

// Outcome classifies the result of a single probe.
type Outcome int

const (
	OutcomeFound    Outcome = iota // success status, distinct from baselines
	OutcomeSkipped                 // success status, indistinguishable from a baseline
	OutcomeNotFound                // non-success status
	OutcomeError                   // transport failure after retries exhausted
)

// ProbeOutcome is the per-candidate result emitted by the worker pool.
type ProbeOutcome struct {
	Path    string
	URL     string
	Status  int
	Size    int64
	Outcome Outcome
	Reason  string // classifier name for OutcomeSkipped
	Err     error  // set for OutcomeError
	Finding *Finding
}

// Classifier decides whether a successful response should be
// suppressed because it is indistinguishable from the site's baseline
// pages. Implementations must be safe for concurrent use.
type Classifier interface {
	Apply(resp *Response) (suppress bool, reason string)
}

// Notifier delivers a confirmed finding out of band. Delivery failures
// never invalidate the finding; the caller logs and moves on.
type Notifier interface {
	Notify(ctx context.Context, f Finding) error
}

// FindingHook runs a local side effect per confirmed finding.
type FindingHook interface {
	Run(f Finding)
}
