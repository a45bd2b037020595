package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nvoss/dirscout/internal/scanner"
)

func TestNotifyDelivers(t *testing.T) {
	var received payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("payload is not valid JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, 5*time.Second, true)
	f := scanner.Finding{URL: "http://target/backup.zip", Path: "backup.zip", Status: 200, Size: 42}
	if err := n.Notify(context.Background(), f); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(received.Embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(received.Embeds))
	}
	e := received.Embeds[0]
	if e.Title == "" || e.Color == 0 {
		t.Errorf("embed missing title/color: %+v", e)
	}
	if !strings.Contains(e.Description, f.URL) || !strings.Contains(e.Description, "200") {
		t.Errorf("description must embed URL and status: %q", e.Description)
	}
}

func TestNotifyNon204IsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, 5*time.Second, true)
	err := n.Notify(context.Background(), scanner.Finding{URL: "http://t/x", Status: 200})
	if err == nil {
		t.Fatal("any status other than 204 is a delivery failure")
	}
	if !strings.Contains(err.Error(), "200") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestNotifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	n := NewWebhookNotifier(server.URL, time.Second, true)
	if err := n.Notify(context.Background(), scanner.Finding{URL: "http://t/x"}); err == nil {
		t.Fatal("expected a transport error")
	}
}
