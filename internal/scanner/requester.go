package scanner

import (
	"context"
	"crypto/md5"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nvoss/dirscout/internal/config"
)

// retryDelay is the pause between transport-failure retry attempts.
const retryDelay = 500 * time.Millisecond

// Requester wraps an HTTP client for probing candidate paths. A single
// Requester is shared read-only across all concurrent probes.
type Requester struct {
	client    *http.Client
	limiter   *rate.Limiter // nil = unlimited
	baseURL   *url.URL
	userAgent string
	maxRetry  int
	quiet     bool
}

// NewRequester creates a Requester from the provided options.
func NewRequester(opts *config.Options) (*Requester, error) {
	base, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", opts.URL, err)
	}
	if base.Scheme == "" {
		base.Scheme = "http"
	}
	base.Path = strings.TrimRight(base.Path, "/")

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
		MaxIdleConnsPerHost: opts.Threads,
		MaxIdleConns:        opts.Threads,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}

	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	return &Requester{
		client:    client,
		limiter:   limiter,
		baseURL:   base,
		userAgent: ua,
		maxRetry:  opts.MaxRetry,
		quiet:     opts.Quiet,
	}, nil
}

// JoinURL resolves a candidate path against the target base URL,
// preserving the target's scheme, host, and any existing path prefix.
// An empty path yields the site root.
func (r *Requester) JoinURL(path string) string {
	target := r.baseURL.String()
	if p := strings.TrimLeft(path, "/"); p != "" {
		target += "/" + p
	}
	return target
}

// Fetch issues a GET for the given path. Transport-level failures
// (connection errors, timeouts, DNS) are retried up to maxRetry
// additional times with a diagnostic per retry; HTTP error statuses
// are valid, final responses and are never retried. After exhausting
// retries Fetch returns a nil Response and the last transport error.
// The response body is lower-cased before being returned.
func (r *Requester) Fetch(ctx context.Context, path string) (*Response, error) {
	targetURL := r.JoinURL(path)

	var lastErr error
	for attempt := 0; attempt <= r.maxRetry; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := r.do(ctx, targetURL)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, err
			}
			if attempt < r.maxRetry && !r.quiet {
				fmt.Fprintf(os.Stderr, "[!] Attempt %d/%d failed for %s: %v — retrying\n",
					attempt+1, r.maxRetry+1, targetURL, err)
			}
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("requesting %s after %d retries: %w", targetURL, r.maxRetry, lastErr)
}

func (r *Requester) do(ctx context.Context, targetURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %s: %w", targetURL, err)
	}

	body := strings.ToLower(string(raw))
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		BodyHash:   md5.Sum([]byte(body)),
		URL:        targetURL,
	}, nil
}
