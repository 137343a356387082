package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/burrowdns/burrow/pkg/admin"
	"github.com/burrowdns/burrow/pkg/metrics"
)

// Client talks to a running resolver over its admin API
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the admin API at addr, e.g. "127.0.0.1:5380"
func NewClient(addr string) *Client {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: strings.TrimRight(addr, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Status returns the resolver's identity and active sources
func (c *Client) Status(ctx context.Context) (*admin.Status, error) {
	var status admin.Status
	if err := c.get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Names returns the hostname to address map from the discovery snapshot
func (c *Client) Names(ctx context.Context) (map[string]string, error) {
	names := map[string]string{}
	if err := c.get(ctx, "/names", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Health returns component health. The payload is returned for both the
// healthy and unhealthy cases; only transport and decode failures error.
func (c *Client) Health(ctx context.Context) (*metrics.HealthStatus, error) {
	resp, err := c.do(ctx, "/health")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health metrics.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode /health response: %w", err)
	}
	return &health, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	resp, err := c.do(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("admin API returned %s for %s: %s", resp.Status, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach admin API: %w", err)
	}
	return resp, nil
}
