package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nvoss/dirscout/internal/config"
	"github.com/nvoss/dirscout/internal/filter"
	"github.com/nvoss/dirscout/internal/hook"
	"github.com/nvoss/dirscout/internal/notify"
	"github.com/nvoss/dirscout/internal/output"
	"github.com/nvoss/dirscout/internal/scanner"
	"github.com/nvoss/dirscout/internal/wordlist"
)

// Run executes the full scan pipeline: wordlist load, baseline
// fingerprinting, concurrent probing, and the final summary. The only
// fatal condition is baseline unavailability; every other failure is
// recovered locally and reflected in the summary counts.
func Run(ctx context.Context, opts *config.Options) error {
	// 1. Load wordlist. Never fails: falls back to the built-in list.
	paths := wordlist.Load(opts.WordlistPath)

	// 2. Create HTTP requester, shared read-only by all probes.
	req, err := scanner.NewRequester(opts)
	if err != nil {
		return fmt.Errorf("creating requester: %w", err)
	}

	if !opts.Quiet {
		printBanner(opts, len(paths))
	}

	// 3. Establish the baseline. Failure aborts before any probing.
	if !opts.Quiet {
		fmt.Fprintf(os.Stderr, "[*] Establishing baseline against %s ...\n", opts.URL)
	}
	baseline, err := scanner.EstablishBaseline(ctx, req, opts.Quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[!] Aborting scan: %v\nNo sensitive files found.\n", err)
		return err
	}

	// 4. Build the classifier chain.
	chain := filter.NewChain()
	chain.Add(filter.NewBaselineFilter(baseline, opts.SimilarityThreshold))
	if len(opts.IncludeStatus) > 0 || len(opts.ExcludeStatus) > 0 {
		chain.Add(filter.NewStatusFilter(opts.IncludeStatus, opts.ExcludeStatus))
	}
	if opts.Dedupe {
		chain.Add(filter.NewDuplicateFilter(2))
	}

	// 5. Event sinks.
	var notifier scanner.Notifier
	if opts.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(opts.WebhookURL, opts.Timeout, opts.Quiet)
	}
	var findingHook scanner.FindingHook
	if opts.OnResultCmd != "" {
		findingHook = hook.NewRunner(opts.OnResultCmd, opts.Quiet)
	}

	// 6. Output writer.
	out, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating output writer: %w", err)
	}
	defer out.Close()
	if err := out.WriteHeader(); err != nil {
		return err
	}

	// 7. Interactive pause toggle (no-op when stdin is not a terminal).
	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	// 8. Fan out the probes and aggregate their outcomes.
	start := time.Now()
	outcomes := scanner.RunPool(ctx, req, paths, scanner.PoolConfig{
		Threads:  opts.Threads,
		Classify: chain,
		Notifier: notifier,
		Hook:     findingHook,
		Pauser:   pauser,
		Quiet:    opts.Quiet,
	})

	var stats output.Stats
	for oc := range outcomes {
		stats.TotalProbes++
		switch oc.Outcome {
		case scanner.OutcomeFound:
			stats.Found++
			if err := out.WriteFinding(oc.Finding); err != nil {
				return err
			}
		case scanner.OutcomeSkipped:
			stats.Skipped++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "[~] Skipped (%s): %s\n", oc.Reason, oc.URL)
			}
		case scanner.OutcomeNotFound:
			stats.NotFound++
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "[-] Not found: %s (status %d)\n", oc.URL, oc.Status)
			}
		case scanner.OutcomeError:
			stats.Errors++
			fmt.Fprintf(os.Stderr, "[!] Unresolved: %s: %v\n", oc.URL, oc.Err)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	stats.Duration = time.Since(start)
	if pauser != nil {
		stats.Duration -= pauser.PausedDuration()
	}
	return out.WriteFooter(stats)
}

func createWriter(opts *config.Options) (output.Writer, error) {
	switch opts.OutputFormat {
	case "json":
		return output.NewJSONWriter(opts.OutputFile)
	default:
		return output.NewTextWriter(opts.OutputFile, opts.NoColor, opts.Quiet)
	}
}

func printBanner(opts *config.Options, pathCount int) {
	dim, white, yellow, reset := "\033[2m", "\033[97m", "\033[33m", "\033[0m"
	if opts.NoColor {
		dim, white, yellow, reset = "", "", "", ""
	}
	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n", dim, reset)
	fmt.Fprintf(os.Stderr, "  %sTarget:%s     %s%s%s\n", dim, reset, white, opts.URL, reset)
	fmt.Fprintf(os.Stderr, "  %sThreads:%s    %s%d%s\n", dim, reset, yellow, opts.Threads, reset)
	fmt.Fprintf(os.Stderr, "  %sWordlist:%s   %s%d paths%s\n", dim, reset, white, pathCount, reset)
	fmt.Fprintf(os.Stderr, "  %sRetries:%s    %s%d%s\n", dim, reset, white, opts.MaxRetry, reset)
	webhook := "off"
	if opts.WebhookURL != "" {
		webhook = "on"
	}
	fmt.Fprintf(os.Stderr, "  %sWebhook:%s    %s%s%s\n", dim, reset, white, webhook, reset)
	if opts.Rate > 0 {
		fmt.Fprintf(os.Stderr, "  %sRate:%s       %s%.1f req/s%s\n", dim, reset, white, opts.Rate, reset)
	}
	fmt.Fprintf(os.Stderr, "%s  ──────────────────────────────────────%s\n\n", dim, reset)
}
