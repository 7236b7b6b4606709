// Package blobfetch downloads submission audio blobs over HTTPS.
package blobfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches audio blobs with a pooled, timeout-bound HTTP client.
type Client struct {
	http *http.Client
}

// New creates a blob-fetch client with connection pooling tuned for the
// worker's in-flight concurrency.
func New(poolSize int) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:          poolSize,
				MaxIdleConnsPerHost:   poolSize,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ForceAttemptHTTP2:     true,
			},
		},
	}
}

// Fetch downloads the bytes at blobURL.
func (c *Client) Fetch(ctx context.Context, blobURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blobURL, nil)
	if err != nil {
		return nil, fmt.Errorf("blob fetch: create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blob fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("blob fetch: status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("blob fetch: read body: %w", err)
	}
	return data, nil
}
