// Package sheets mirrors inventory data to an external spreadsheet webhook.
// The webhook is a black box: one JSON POST per sync, no retries.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned by Sync when no webhook URL was provided.
var ErrNotConfigured = errors.New("spreadsheet mirror not configured")

// Client pushes snapshots to the configured webhook. Construct it once at
// process start and pass it by reference; an empty webhook URL means the
// mirror is disabled.
type Client struct {
	webhookURL     string
	spreadsheetURL string
	httpc          *http.Client
}

func New(webhookURL, spreadsheetURL string) *Client {
	return &Client{
		webhookURL:     webhookURL,
		spreadsheetURL: spreadsheetURL,
		httpc:          &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

// SpreadsheetURL is the human-facing URL of the mirrored sheet, if known.
func (c *Client) SpreadsheetURL() string {
	return c.spreadsheetURL
}

// Sync POSTs the payload as JSON to the webhook. Any non-2xx status is an
// error; the response body is discarded.
func (c *Client) Sync(ctx context.Context, payload any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheets webhook returned %s", resp.Status)
	}
	return nil
}
