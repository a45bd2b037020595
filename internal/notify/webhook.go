// Package notify delivers confirmed findings to an out-of-band event
// sink. Delivery is best-effort: a failed notification is logged and
// the finding stays recorded.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nvoss/dirscout/internal/scanner"
)

// colorRed is the severity color used for finding embeds.
const colorRed = 16711680

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

// WebhookNotifier POSTs a JSON embed per finding to a webhook
// endpoint. A 204 response counts as delivered; anything else is a
// delivery failure.
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
	quiet    bool
}

// NewWebhookNotifier creates a notifier for the given endpoint URL.
func NewWebhookNotifier(endpoint string, timeout time.Duration, quiet bool) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		quiet:    quiet,
	}
}

// Notify implements scanner.Notifier. Concurrent calls are safe; each
// finding is delivered independently from its own probe task.
func (n *WebhookNotifier) Notify(ctx context.Context, f scanner.Finding) error {
	body, err := json.Marshal(payload{
		Embeds: []embed{{
			Title:       "Sensitive File Found",
			Description: fmt.Sprintf("URL: %s\nStatus: %d", f.URL, f.Status),
			Color:       colorRed,
		}},
	})
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	if !n.quiet {
		fmt.Fprintf(os.Stderr, "[+] Webhook delivered for %s\n", f.URL)
	}
	return nil
}
