package config

import "time"

// Options holds all configuration for a dirscout scan.
type Options struct {
	// Target
	URL          string
	WordlistPath string

	// Probing
	Threads  int
	MaxRetry int
	Timeout  time.Duration
	Rate     float64 // requests/sec across all workers, 0 = unlimited

	// Classification
	SimilarityThreshold float64
	IncludeStatus       []int
	ExcludeStatus       []int
	Dedupe              bool

	// Notification
	WebhookURL  string
	OnResultCmd string

	// HTTP
	UserAgent       string
	Proxy           string
	FollowRedirects bool

	// Output
	OutputFile   string
	OutputFormat string // "text", "json"
	Quiet        bool
	NoColor      bool
}
