package scanner

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// PoolConfig holds options for the probe worker pool.
type PoolConfig struct {
	Threads  int
	Classify Classifier
	Notifier Notifier    // nil = no out-of-band notification
	Hook     FindingHook // nil = no per-finding hook
	Pauser   *Pauser     // nil = no pause support
	Quiet    bool
}

// RunPool fans the candidate paths out across a fixed number of worker
// goroutines and returns a channel of classified outcomes. At most
// cfg.Threads probes execute network I/O simultaneously; classification
// and notification run inside each probe's worker, so notify calls for
// separate findings can be in flight concurrently. The channel is
// closed once every candidate has been processed.
//
// A failure inside one probe never aborts sibling probes: transport
// errors surface as OutcomeError and anything unexpected is recovered
// within the task.
func RunPool(ctx context.Context, req *Requester, paths []string, cfg PoolConfig) <-chan ProbeOutcome {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	pathCh := make(chan string, threads*2)
	outCh := make(chan ProbeOutcome, threads*2)

	var wg sync.WaitGroup

	// Producer: feed candidates into the channel.
	go func() {
		defer close(pathCh)
		for _, p := range paths {
			select {
			case pathCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range pathCh {
				if cfg.Pauser != nil {
					cfg.Pauser.Wait(ctx)
				}
				if ctx.Err() != nil {
					return
				}
				out := probeOne(ctx, req, path, cfg)
				select {
				case outCh <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Closer: when all workers finish, close the results channel.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	return outCh
}

// probeOne fetches and classifies a single candidate path. Confirmed
// findings are notified from here, concurrently with sibling probes.
func probeOne(ctx context.Context, req *Requester, path string, cfg PoolConfig) (out ProbeOutcome) {
	defer func() {
		// Isolation: one candidate's failure must not mask results for
		// the remaining candidates.
		if r := recover(); r != nil {
			// A panic past classification comes from the notifier or
			// hook; the finding itself is already confirmed and stays.
			if out.Finding != nil {
				if !cfg.Quiet {
					fmt.Fprintf(os.Stderr, "[!] Delivery failure for %s: %v\n", out.Finding.URL, r)
				}
				return
			}
			out = ProbeOutcome{
				Path:    path,
				URL:     req.JoinURL(path),
				Outcome: OutcomeError,
				Err:     fmt.Errorf("probe failure: %v", r),
			}
		}
	}()

	resp, err := req.Fetch(ctx, path)
	if err != nil {
		return ProbeOutcome{
			Path:    path,
			URL:     req.JoinURL(path),
			Outcome: OutcomeError,
			Err:     err,
		}
	}

	out = ProbeOutcome{
		Path:   path,
		URL:    resp.URL,
		Status: resp.StatusCode,
		Size:   int64(len(resp.Body)),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Outcome = OutcomeNotFound
		return out
	}

	if cfg.Classify != nil {
		if suppress, reason := cfg.Classify.Apply(resp); suppress {
			out.Outcome = OutcomeSkipped
			out.Reason = reason
			return out
		}
	}

	finding := &Finding{
		URL:    resp.URL,
		Path:   path,
		Status: resp.StatusCode,
		Size:   int64(len(resp.Body)),
	}
	out.Outcome = OutcomeFound
	out.Finding = finding

	if cfg.Notifier != nil {
		if err := cfg.Notifier.Notify(ctx, *finding); err != nil && !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "[!] Notification failed for %s: %v\n", finding.URL, err)
		}
	}
	if cfg.Hook != nil {
		cfg.Hook.Run(*finding)
	}

	return out
}
