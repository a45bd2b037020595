package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestEstablishBaseline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, "Home Page")
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "Not Found Error")
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 0))
	if err != nil {
		t.Fatal(err)
	}

	b, err := EstablishBaseline(context.Background(), req, true)
	if err != nil {
		t.Fatalf("EstablishBaseline: %v", err)
	}
	if b.IndexBody != "home page" {
		t.Errorf("index body = %q (bodies must be lower-cased)", b.IndexBody)
	}
	if !b.HasNotFound || b.NotFoundBody != "not found error" {
		t.Errorf("not-found baseline = (%v, %q)", b.HasNotFound, b.NotFoundBody)
	}
}

func TestEstablishBaselineIndexNotSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 0))
	if err != nil {
		t.Fatal(err)
	}

	_, err = EstablishBaseline(context.Background(), req, true)
	if !errors.Is(err, ErrBaselineUnavailable) {
		t.Errorf("expected ErrBaselineUnavailable, got %v", err)
	}
}

func TestEstablishBaselineIndexUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // all requests now fail at transport level

	req, err := NewRequester(testOptions(server.URL, 0))
	if err != nil {
		t.Fatal(err)
	}

	_, err = EstablishBaseline(context.Background(), req, true)
	if !errors.Is(err, ErrBaselineUnavailable) {
		t.Errorf("expected ErrBaselineUnavailable, got %v", err)
	}
}

func TestEstablishBaselineNo404Detected(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, "catch-all landing page")
	}))
	defer server.Close()

	req, err := NewRequester(testOptions(server.URL, 0))
	if err != nil {
		t.Fatal(err)
	}

	b, err := EstablishBaseline(context.Background(), req, true)
	if err != nil {
		t.Fatalf("missing 404 page is not fatal: %v", err)
	}
	if b.HasNotFound {
		t.Error("expected no not-found baseline when every path returns 200")
	}
	if b.IndexBody != "catch-all landing page" {
		t.Errorf("index body = %q", b.IndexBody)
	}
	// Root plus both nonexistent-path probes.
	if got := requests.Load(); got != 3 {
		t.Errorf("expected 3 baseline requests, got %d", got)
	}
}

func TestRandomProbesDiffer(t *testing.T) {
	if randomProbe() == randomProbe() {
		t.Error("consecutive probes must be differently named")
	}
}
