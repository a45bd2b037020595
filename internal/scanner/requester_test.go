package scanner

import (
	"context"
	"crypto/md5"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nvoss/dirscout/internal/config"
)

func testOptions(url string, maxRetry int) *config.Options {
	return &config.Options{
		URL:      url,
		Threads:  1,
		MaxRetry: maxRetry,
		Timeout:  5 * time.Second,
		Quiet:    true,
	}
}

func TestFetchLowercasesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Home PAGE With MiXeD Case"))
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 0))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := req.Fetch(context.Background(), "index")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := "home page with mixed case"
	if resp.Body != want {
		t.Errorf("body = %q, want %q", resp.Body, want)
	}
	if resp.BodyHash != md5.Sum([]byte(want)) {
		t.Error("body hash must cover the lower-cased body")
	}
}

func TestJoinURLPreservesPathPrefix(t *testing.T) {
	req, err := NewRequester(testOptions("http://example.com/app/", 0))
	if err != nil {
		t.Fatal(err)
	}

	if got := req.JoinURL("admin"); got != "http://example.com/app/admin" {
		t.Errorf("JoinURL(admin) = %q", got)
	}
	if got := req.JoinURL("/admin"); got != "http://example.com/app/admin" {
		t.Errorf("JoinURL(/admin) = %q", got)
	}
	if got := req.JoinURL(""); got != "http://example.com/app" {
		t.Errorf("JoinURL(empty) = %q", got)
	}
}

func TestFetchRetriesTransportFailures(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		// Hijack and close the connection to force a transport error.
		if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
			conn.Close()
		}
	}))
	defer server.Close()

	const maxRetry = 2
	req, err := NewRequester(testOptions(server.URL, maxRetry))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := req.Fetch(context.Background(), "admin")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if resp != nil {
		t.Error("expected nil response on transport failure")
	}
	if got := attempts.Load(); got != maxRetry+1 {
		t.Errorf("expected exactly %d attempts, got %d", maxRetry+1, got)
	}
}

func TestFetchDoesNotRetryHTTPErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 3))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := req.Fetch(context.Background(), "admin")
	if err != nil {
		t.Fatalf("HTTP error statuses are valid responses: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("expected a single attempt for an HTTP error, got %d", got)
	}
}

func TestFetchRecoversAfterTransientFailure(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			if conn, _, err := w.(http.Hijacker).Hijack(); err == nil {
				conn.Close()
			}
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 2))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := req.Fetch(context.Background(), "admin")
	if err != nil {
		t.Fatalf("expected success on retry: %v", err)
	}
	if resp.Body != "recovered" {
		t.Errorf("body = %q", resp.Body)
	}
	if got := attempts.Load(); got != 2 {
		t.Errorf("expected 2 attempts, got %d", got)
	}
}
