// Package wayback queries the Internet Archive availability API.
package wayback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://archive.org"
	DefaultTimeout = 15 * time.Second

	availablePath = "/wayback/available"
	maxBodyBytes  = 1 << 20
)

// Snapshot is the closest archived copy of a page.
type Snapshot struct {
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // YYYYMMDDhhmmss
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

type availabilityResponse struct {
	URL               string `json:"url"`
	ArchivedSnapshots struct {
		Closest *Snapshot `json:"closest"`
	} `json:"archived_snapshots"`
}

// Client talks to the availability endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Closest returns the closest available snapshot of pageURL. The boolean is
// false when the archive has no usable copy; err is set only when the archive
// could not be asked or answered with something unreadable.
func (c *Client) Closest(ctx context.Context, pageURL string) (Snapshot, bool, error) {
	endpoint := c.baseURL + availablePath + "?" + url.Values{"url": {pageURL}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to build availability request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to query wayback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, false, fmt.Errorf("wayback availability failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read wayback response: %w", err)
	}

	return parseAvailability(payload)
}

func parseAvailability(payload []byte) (Snapshot, bool, error) {
	var out availabilityResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to decode wayback response: %w", err)
	}

	closest := out.ArchivedSnapshots.Closest
	if closest == nil || closest.URL == "" || !closest.Available {
		return Snapshot{}, false, nil
	}
	return *closest, true, nil
}
